package reschedule_appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/calendar"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/service/availability"
	"github.com/m04kA/SMC-CalendarService/internal/service/banners"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
)

// 2025-09-15 понедельник, 2025-09-14 воскресенье (закрыто)
const (
	monday = "2025-09-15"
	sunday = "2025-09-14"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type memoryFeed struct {
	mu    sync.Mutex
	appts []domain.Appointment
	err   error
}

func (f *memoryFeed) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Appointment, len(f.appts))
	copy(out, f.appts)
	return out, nil
}

type updateCall struct {
	id     string
	update domain.AppointmentUpdate
}

type recordingUpdater struct {
	mu      sync.Mutex
	calls   []updateCall
	err     error
	entered chan string
	gate    chan struct{}
}

func (u *recordingUpdater) UpdateAppointment(ctx context.Context, id string, update domain.AppointmentUpdate) error {
	u.mu.Lock()
	u.calls = append(u.calls, updateCall{id: id, update: update})
	u.mu.Unlock()

	if u.entered != nil {
		u.entered <- id
	}
	if u.gate != nil {
		<-u.gate
	}
	return u.err
}

func (u *recordingUpdater) Calls() []updateCall {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]updateCall(nil), u.calls...)
}

type resultRecorder struct {
	mu      sync.Mutex
	results []string
}

func (r *resultRecorder) ObserveReschedule(result string) {
	r.mu.Lock()
	r.results = append(r.results, result)
	r.mu.Unlock()
}

type fixture struct {
	uc       *UseCase
	feed     *memoryFeed
	updater  *recordingUpdater
	registry *availability.Registry
	board    *banners.Board
	metrics  *resultRecorder
	clock    fixedClock
}

func newFixture(t *testing.T, cfg Config, appts ...domain.Appointment) *fixture {
	t.Helper()

	clock := fixedClock{now: time.Date(2025, time.September, 15, 8, 0, 0, 0, time.Local)}
	f := &fixture{
		feed:     &memoryFeed{appts: appts},
		updater:  &recordingUpdater{},
		registry: availability.NewRegistry(availability.Defaults{Start: 540, End: 1080, ClosedDays: []time.Weekday{time.Sunday}}, logger.NewNop()),
		board:    banners.NewBoard(clock, nil),
		metrics:  &resultRecorder{},
		clock:    clock,
	}
	f.uc = NewUseCase(f.feed, f.updater, f.registry, calendar.NewAugmenter(clock), f.board, f.metrics, cfg, logger.NewNop())
	f.uc.timeProvider = clock
	return f
}

func appointment(id, provider, service, tm string) domain.Appointment {
	return domain.Appointment{
		ID:           id,
		ProviderID:   provider,
		ProviderName: provider + "-name",
		ServiceName:  service,
		Date:         "Mon, Sep 15",
		ISODate:      monday,
		Time:         tm,
	}
}

func drag(t *testing.T, uc *UseCase, id string, dy float64, drop Drop) (*Gesture, *Outcome, error) {
	t.Helper()

	g, err := uc.Begin(context.Background(), id)
	require.NoError(t, err)
	require.NoError(t, g.Move(dy))

	outcome, err := g.End(context.Background(), drop)
	require.NotNil(t, outcome)
	return g, outcome, err
}

func TestEndCommitsSnappedSlot(t *testing.T) {
	f := newFixture(t, Config{}, appointment("a1", "p1", "Haircut", "9:00 AM - 9:30 AM"))

	g, outcome, err := drag(t, f.uc, "a1", 95, Drop{})
	require.NoError(t, err)

	assert.Equal(t, ResultCommitted, outcome.Result)
	assert.True(t, outcome.Committed)
	assert.Equal(t, 630, outcome.Start)
	assert.Equal(t, 660, outcome.End)
	assert.Equal(t, 90.0, outcome.Offset)
	assert.Equal(t, "Appointment moved to Mon, Sep 15, 10:30 AM", outcome.Banner)

	calls := f.updater.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "a1", calls[0].id)
	assert.Equal(t, domain.AppointmentUpdate{
		Date:       "Mon, Sep 15",
		Time:       "10:30 AM - 11:00 AM",
		ProviderID: "p1",
		UpdatedAt:  f.clock.now,
		DateISO:    monday,
	}, calls[0].update)

	assert.Equal(t, StateIdle, g.State())
	assert.Equal(t, 90.0, g.Offset())
	assert.False(t, f.uc.InFlight("a1"))

	active := f.board.Active()
	require.Len(t, active, 1)
	assert.Equal(t, banners.KindSuccess, active[0].Kind)
	assert.Equal(t, outcome.Banner, active[0].Message)

	// исходная запись в ленте не меняется
	assert.Equal(t, "9:00 AM - 9:30 AM", f.feed.appts[0].Time)
	assert.Equal(t, []string{"committed"}, f.metrics.results)
}

func TestEndRejectsClosedWeekday(t *testing.T) {
	f := newFixture(t, Config{}, appointment("a1", "p1", "Haircut", "9:00 AM - 9:30 AM"))

	g, outcome, err := drag(t, f.uc, "a1", 60, Drop{DayISO: sunday})

	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, ResultValidation, outcome.Result)
	assert.False(t, outcome.Committed)
	assert.Equal(t, 0.0, outcome.Offset)
	assert.Equal(t, 0.0, g.Offset())
	assert.Equal(t, monday, outcome.DayISO)
	assert.Equal(t, 540, outcome.Start)
	assert.Equal(t, "Cannot move appointment: Sunday is not available", outcome.Banner)
	assert.Empty(t, f.updater.Calls())
	assert.False(t, f.uc.InFlight("a1"))

	active := f.board.Active()
	require.Len(t, active, 1)
	assert.Equal(t, banners.KindError, active[0].Kind)
}

func TestEndRejectsToggledDay(t *testing.T) {
	f := newFixture(t, Config{}, appointment("a1", "p1", "Haircut", "9:00 AM - 9:30 AM"))
	_, err := f.registry.Toggle(time.Monday)
	require.NoError(t, err)

	_, outcome, err := drag(t, f.uc, "a1", 0, Drop{})

	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Monday is not available", outcome.Reason)
	assert.Empty(t, f.updater.Calls())
}

func TestEndConflicts(t *testing.T) {
	tests := []struct {
		name       string
		extra      []domain.Appointment
		breaks     []domain.BreakBlock
		dy         float64
		drop       Drop
		wantErr    error
		wantReason string
	}{
		{
			name:       "same provider appointment",
			extra:      []domain.Appointment{appointment("a2", "p1", "Coloring", "10:00 AM - 10:30 AM")},
			dy:         60,
			wantErr:    ErrConflict,
			wantReason: "overlaps Coloring (10:00 AM - 10:30 AM)",
		},
		{
			name:  "touching appointment is fine",
			extra: []domain.Appointment{appointment("a2", "p1", "Coloring", "10:00 AM - 10:30 AM")},
			dy:    30,
		},
		{
			name:  "other provider appointment is fine",
			extra: []domain.Appointment{appointment("a2", "p2", "Coloring", "10:00 AM - 10:30 AM")},
			dy:    60,
		},
		{
			name:       "other provider column",
			extra:      []domain.Appointment{appointment("a2", "p2", "Coloring", "10:00 AM - 10:30 AM")},
			dy:         60,
			drop:       Drop{ProviderID: "p2"},
			wantErr:    ErrConflict,
			wantReason: "overlaps Coloring (10:00 AM - 10:30 AM)",
		},
		{
			name:       "break for everyone",
			breaks:     []domain.BreakBlock{{ProviderID: domain.AllProviders, DayISO: monday, Start: 720, End: 780}},
			dy:         190,
			wantErr:    ErrConflict,
			wantReason: "overlaps a break (12:00 PM - 1:00 PM)",
		},
		{
			name:   "break for another provider is fine",
			breaks: []domain.BreakBlock{{ProviderID: "p2", DayISO: monday, Start: 720, End: 780}},
			dy:     180,
		},
		{
			name:   "break on another day is fine",
			breaks: []domain.BreakBlock{{ProviderID: domain.AllProviders, DayISO: "2025-09-16", Start: 720, End: 780}},
			dy:     180,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appts := append([]domain.Appointment{appointment("a1", "p1", "Haircut", "9:00 AM - 9:30 AM")}, tt.extra...)
			f := newFixture(t, Config{}, appts...)
			for _, b := range tt.breaks {
				_, err := f.registry.AddBreak(b)
				require.NoError(t, err)
			}

			_, outcome, err := drag(t, f.uc, "a1", tt.dy, tt.drop)

			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.True(t, outcome.Committed)
				assert.Len(t, f.updater.Calls(), 1)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantReason, outcome.Reason)
			assert.Equal(t, "Cannot move appointment: "+tt.wantReason, outcome.Banner)
			assert.Equal(t, ResultConflict, outcome.Result)
			assert.Equal(t, 0.0, outcome.Offset)
			assert.Empty(t, f.updater.Calls())
		})
	}
}

func TestEndSurfacesStoreReasonVerbatim(t *testing.T) {
	f := newFixture(t, Config{}, appointment("a1", "p1", "Haircut", "9:00 AM - 9:30 AM"))
	f.updater.err = errors.New("provider p9 does not exist")

	_, outcome, err := drag(t, f.uc, "a1", 30, Drop{ProviderID: "p9"})

	require.ErrorIs(t, err, ErrUnknown)
	assert.Equal(t, ResultUnknown, outcome.Result)
	assert.Equal(t, "provider p9 does not exist", outcome.Reason)
	assert.Equal(t, "Cannot move appointment: provider p9 does not exist", outcome.Banner)
	assert.Equal(t, 0.0, outcome.Offset)
	assert.Equal(t, "p1", outcome.ProviderID)
	assert.Len(t, f.updater.Calls(), 1)
	assert.False(t, f.uc.InFlight("a1"))
	assert.Equal(t, []string{"unknown"}, f.metrics.results)
}

func TestEndClampsIntoAvailability(t *testing.T) {
	for _, ppm := range []float64{1, 2, 0.5} {
		f := newFixture(t, Config{PixelsPerMinute: ppm}, appointment("a1", "p1", "Haircut", "9:00 AM - 10:00 AM"))

		for dy := -3000.0; dy <= 3000; dy += 7 {
			_, outcome, err := drag(t, f.uc, "a1", dy, Drop{})
			require.NoError(t, err, "dy=%v ppm=%v", dy, ppm)

			assert.GreaterOrEqual(t, outcome.Start, 540, "dy=%v ppm=%v", dy, ppm)
			assert.LessOrEqual(t, outcome.Start, 1080-60, "dy=%v ppm=%v", dy, ppm)
			assert.Equal(t, 60, outcome.End-outcome.Start)
			assert.Zero(t, outcome.Start%30, "dy=%v ppm=%v", dy, ppm)
		}
	}
}

func TestEndRejectsAppointmentLongerThanWindow(t *testing.T) {
	f := newFixture(t, Config{}, appointment("a1", "p1", "Full day", "8:00 AM - 7:00 PM"))

	_, outcome, err := drag(t, f.uc, "a1", 0, Drop{})

	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, outcome.Reason, "does not fit into working hours")
	assert.Empty(t, f.updater.Calls())
}

func TestEndRejectsMalformedDay(t *testing.T) {
	f := newFixture(t, Config{}, appointment("a1", "p1", "Haircut", "9:00 AM - 9:30 AM"))

	_, outcome, err := drag(t, f.uc, "a1", 0, Drop{DayISO: "15.09.2025"})

	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, `invalid day "15.09.2025"`, outcome.Reason)
}

func TestEndFeedFailureRollsBack(t *testing.T) {
	f := newFixture(t, Config{}, appointment("a1", "p1", "Haircut", "9:00 AM - 9:30 AM"))

	g, err := f.uc.Begin(context.Background(), "a1")
	require.NoError(t, err)
	f.feed.err = errors.New("feed unavailable")

	outcome, err := g.End(context.Background(), Drop{})

	require.ErrorIs(t, err, ErrUnknown)
	assert.Equal(t, "feed unavailable", outcome.Reason)
	assert.Empty(t, f.updater.Calls())
}

func TestBeginIsExclusive(t *testing.T) {
	f := newFixture(t, Config{},
		appointment("a1", "p1", "Haircut", "9:00 AM - 9:30 AM"),
		appointment("a2", "p1", "Coloring", "11:00 AM - 11:30 AM"))

	g1, err := f.uc.Begin(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, StateDragging, g1.State())
	assert.True(t, f.uc.InFlight("a1"))

	_, err = f.uc.Begin(context.Background(), "a1")
	assert.ErrorIs(t, err, ErrGestureInFlight)

	g2, err := f.uc.Begin(context.Background(), "a2")
	require.NoError(t, err)
	g2.Cancel()
	assert.False(t, f.uc.InFlight("a2"))

	_, err = g1.End(context.Background(), Drop{})
	require.NoError(t, err)

	g3, err := f.uc.Begin(context.Background(), "a1")
	require.NoError(t, err)
	g3.Cancel()
}

func TestBeginUnknownAppointment(t *testing.T) {
	f := newFixture(t, Config{}, appointment("a1", "p1", "Haircut", "9:00 AM - 9:30 AM"))

	_, err := f.uc.Begin(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.False(t, f.uc.InFlight("missing"))

	_, err = f.uc.Begin(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGestureInvalidTransitions(t *testing.T) {
	f := newFixture(t, Config{}, appointment("a1", "p1", "Haircut", "9:00 AM - 9:30 AM"))

	g, _, err := drag(t, f.uc, "a1", 30, Drop{})
	require.NoError(t, err)

	assert.ErrorIs(t, g.Move(10), ErrInvalidState)

	outcome, err := g.End(context.Background(), Drop{})
	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Len(t, f.updater.Calls(), 1)
}

func TestMoveHasNoSideEffects(t *testing.T) {
	f := newFixture(t, Config{}, appointment("a1", "p1", "Haircut", "9:00 AM - 9:30 AM"))

	g, err := f.uc.Begin(context.Background(), "a1")
	require.NoError(t, err)

	for _, dy := range []float64{10, -40, 400, 75} {
		require.NoError(t, g.Move(dy))
		assert.Equal(t, dy, g.Offset())
	}

	assert.Empty(t, f.updater.Calls())
	assert.Empty(t, f.board.Active())
	assert.Equal(t, StateDragging, g.State())
	g.Cancel()
}

func TestCommitsAreSerialized(t *testing.T) {
	f := newFixture(t, Config{},
		appointment("a1", "p1", "Haircut", "9:00 AM - 9:30 AM"),
		appointment("a2", "p2", "Coloring", "9:00 AM - 9:30 AM"))
	f.updater.entered = make(chan string, 2)
	f.updater.gate = make(chan struct{})

	g1, err := f.uc.Begin(context.Background(), "a1")
	require.NoError(t, err)
	g2, err := f.uc.Begin(context.Background(), "a2")
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		_, _ = g1.End(context.Background(), Drop{})
	}()
	require.Equal(t, "a1", <-f.updater.entered)
	assert.Equal(t, StateCommitting, g1.State())

	go func() {
		defer wg.Done()
		_, _ = g2.End(context.Background(), Drop{})
	}()

	select {
	case id := <-f.updater.entered:
		t.Fatalf("commit for %s started before the previous one finished", id)
	case <-time.After(50 * time.Millisecond):
	}

	f.updater.gate <- struct{}{}
	require.Equal(t, "a2", <-f.updater.entered)
	f.updater.gate <- struct{}{}
	wg.Wait()

	calls := f.updater.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "a1", calls[0].id)
	assert.Equal(t, "a2", calls[1].id)
}

func TestCommitsFollowCompletionOrder(t *testing.T) {
	f := newFixture(t, Config{},
		appointment("a1", "p1", "Haircut", "9:00 AM - 9:30 AM"),
		appointment("a2", "p2", "Coloring", "9:00 AM - 9:30 AM"),
		appointment("a3", "p3", "Styling", "9:00 AM - 9:30 AM"))
	f.updater.entered = make(chan string, 3)
	f.updater.gate = make(chan struct{})

	ids := []string{"a1", "a2", "a3"}
	gestures := make([]*Gesture, 0, len(ids))
	for _, id := range ids {
		g, err := f.uc.Begin(context.Background(), id)
		require.NoError(t, err)
		gestures = append(gestures, g)
	}

	var wg sync.WaitGroup
	for i, g := range gestures {
		wg.Add(1)
		go func(g *Gesture) {
			defer wg.Done()
			_, _ = g.End(context.Background(), Drop{})
		}(g)

		// следующий жест завершается только после того, как предыдущий встал в очередь
		want := i + 1
		require.Eventually(t, func() bool { return f.uc.queue.pending() == want }, time.Second, time.Millisecond)
	}

	for _, id := range ids {
		require.Equal(t, id, <-f.updater.entered)
		f.updater.gate <- struct{}{}
	}
	wg.Wait()

	calls := f.updater.Calls()
	require.Len(t, calls, 3)
	for i, id := range ids {
		assert.Equal(t, id, calls[i].id)
	}
	assert.Equal(t, 0, f.uc.queue.pending())
}

func TestExecute(t *testing.T) {
	f := newFixture(t, Config{},
		appointment("a1", "p1", "Haircut", "9:00 AM - 9:30 AM"),
		appointment("a2", "p1", "Coloring", "10:00 AM - 10:30 AM"))

	resp, err := f.uc.Execute(context.Background(), &Request{AppointmentID: "a1", OffsetY: 120})
	require.NoError(t, err)
	assert.True(t, resp.Committed)
	assert.Equal(t, "11:00 AM - 11:30 AM", resp.Time)
	assert.Equal(t, "Mon, Sep 15", resp.Date)

	resp, err = f.uc.Execute(context.Background(), &Request{AppointmentID: "a1", OffsetY: 60})
	require.ErrorIs(t, err, ErrConflict)
	require.NotNil(t, resp)
	assert.Equal(t, ResultConflict, resp.Result)

	_, err = f.uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{AppointmentID: "missing"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
