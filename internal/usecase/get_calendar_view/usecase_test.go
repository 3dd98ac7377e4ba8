package get_calendar_view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/calendar"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/service/availability"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type stubFeed struct {
	appts []domain.Appointment
	err   error
}

func (f *stubFeed) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	return f.appts, f.err
}

type stubRoster struct {
	members []domain.TeamMember
	err     error
}

func (r *stubRoster) ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error) {
	return r.members, r.err
}

func newUseCase(feed *stubFeed, roster *stubRoster, registry *availability.Registry) *UseCase {
	clock := fixedClock{now: time.Date(2025, time.September, 15, 10, 0, 0, 0, time.Local)}
	uc := NewUseCase(feed, roster, registry, calendar.NewAugmenter(clock), logger.NewNop())
	uc.timeProvider = clock
	return uc
}

func newRegistry() *availability.Registry {
	return availability.NewRegistry(availability.Defaults{Start: 540, End: 1080, ClosedDays: []time.Weekday{time.Sunday}}, logger.NewNop())
}

func sampleFeed() *stubFeed {
	return &stubFeed{appts: []domain.Appointment{
		{ID: "a3", ProviderID: "p2", ServiceName: "Nails", ISODate: "2025-09-16", Time: "9:00 AM - 9:30 AM"},
		{ID: "a1", ProviderID: "p1", ServiceName: "Haircut", Date: "Mon, Sep 15", Time: "11:00 AM - 11:30 AM"},
		{ID: "a2", ProviderID: "p1", ServiceName: "Coloring", Date: "Mon, Sep 15", Time: "9:00 AM - 10:00 AM"},
		{ID: "a4", ProviderID: "p1", ServiceName: "Beard", ISODate: "2025-10-20", Time: "1:00 PM - 1:30 PM"},
	}}
}

func sampleRoster() *stubRoster {
	return &stubRoster{members: []domain.TeamMember{{ID: "p1", Name: "Anna"}, {ID: "p2", Name: "Boris"}}}
}

func ids(appts []domain.AugmentedAppointment) []string {
	out := make([]string, 0, len(appts))
	for _, a := range appts {
		out = append(out, a.ID)
	}
	return out
}

func TestExecuteWeek(t *testing.T) {
	registry := newRegistry()
	_, err := registry.AddBreak(domain.BreakBlock{ProviderID: domain.AllProviders, DayISO: "2025-09-15", Start: 720, End: 780})
	require.NoError(t, err)

	uc := newUseCase(sampleFeed(), sampleRoster(), registry)

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2025, time.September, 17, 0, 0, 0, 0, time.Local),
		Mode: domain.ViewWeek,
	})
	require.NoError(t, err)

	assert.Equal(t, "Sep 14 - Sep 20", resp.Header)
	require.Len(t, resp.Days, 7)
	assert.Equal(t, "2025-09-14", resp.Days[0].DayISO)
	assert.False(t, resp.Days[0].Availability.Enabled)
	assert.True(t, resp.Days[1].Availability.Enabled)
	assert.True(t, resp.Days[1].IsToday)
	assert.Len(t, resp.Days[1].Breaks, 1)
	assert.Empty(t, resp.Days[2].Breaks)

	assert.Len(t, resp.Columns, 2)
	assert.Equal(t, []string{"a2", "a1", "a3"}, ids(resp.Appointments))
	assert.Equal(t, 60, resp.Appointments[0].Duration)
}

func TestExecuteMonth(t *testing.T) {
	uc := newUseCase(sampleFeed(), sampleRoster(), newRegistry())

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2024, time.February, 10, 0, 0, 0, 0, time.Local),
		Mode: domain.ViewMonth,
	})
	require.NoError(t, err)

	assert.Equal(t, "Feb 2024", resp.Header)
	require.Len(t, resp.Days, 42)
	assert.Equal(t, "2024-01-28", resp.Days[0].DayISO)
	assert.False(t, resp.Days[0].InMonth)
	assert.True(t, resp.Days[4].InMonth)
	assert.Equal(t, "2024-03-09", resp.Days[41].DayISO)
	assert.Empty(t, resp.Appointments)
}

func TestExecuteDefaultsToToday(t *testing.T) {
	uc := newUseCase(sampleFeed(), sampleRoster(), newRegistry())

	resp, err := uc.Execute(context.Background(), &Request{Mode: domain.ViewDay})
	require.NoError(t, err)

	assert.Equal(t, "Mon, Sep 15", resp.Header)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, resp.From, resp.To)
	assert.Equal(t, []string{"a2", "a1"}, ids(resp.Appointments))
}

func TestExecuteProviderFilter(t *testing.T) {
	uc := newUseCase(sampleFeed(), sampleRoster(), newRegistry())
	anchor := time.Date(2025, time.September, 15, 0, 0, 0, 0, time.Local)

	resp, err := uc.Execute(context.Background(), &Request{Date: anchor, Mode: domain.ViewWeek, ProviderID: "p2"})
	require.NoError(t, err)
	assert.Equal(t, []domain.TeamMember{{ID: "p2", Name: "Boris"}}, resp.Columns)
	assert.Equal(t, []string{"a3"}, ids(resp.Appointments))

	resp, err = uc.Execute(context.Background(), &Request{Date: anchor, Mode: domain.ViewWeek, ProviderID: domain.AllProviders})
	require.NoError(t, err)
	assert.Len(t, resp.Columns, 2)

	_, err = uc.Execute(context.Background(), &Request{Date: anchor, Mode: domain.ViewWeek, ProviderID: "p9"})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name    string
		feed    *stubFeed
		roster  *stubRoster
		req     *Request
		wantErr error
	}{
		{name: "nil request", feed: sampleFeed(), roster: sampleRoster(), req: nil, wantErr: ErrInvalidInput},
		{name: "unknown mode", feed: sampleFeed(), roster: sampleRoster(), req: &Request{Mode: "year"}, wantErr: ErrInvalidInput},
		{name: "roster failure", feed: sampleFeed(), roster: &stubRoster{err: errors.New("db down")}, req: &Request{Mode: domain.ViewDay}, wantErr: ErrInternal},
		{name: "feed failure", feed: &stubFeed{err: errors.New("db down")}, roster: sampleRoster(), req: &Request{Mode: domain.ViewDay}, wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(tt.feed, tt.roster, newRegistry())
			resp, err := uc.Execute(context.Background(), tt.req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

type recordingObserver struct {
	anchor time.Time
	mode   domain.ViewMode
	calls  int
}

func (o *recordingObserver) Observe(anchor time.Time, mode domain.ViewMode) {
	o.anchor = anchor
	o.mode = mode
	o.calls++
}

func TestExecuteNotifiesObserver(t *testing.T) {
	uc := newUseCase(sampleFeed(), sampleRoster(), newRegistry())
	observer := &recordingObserver{}
	uc.SetObserver(observer)

	_, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2025, time.October, 20, 15, 30, 0, 0, time.Local),
		Mode: domain.ViewMonth,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, observer.calls)
	assert.Equal(t, domain.ViewMonth, observer.mode)
	assert.Equal(t, "2025-10-20", calendar.DayISO(observer.anchor))
	assert.Equal(t, 0, observer.anchor.Hour())

	_, err = uc.Execute(context.Background(), &Request{Mode: "year"})
	require.Error(t, err)
	assert.Equal(t, 1, observer.calls)
}
