package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CalendarService/internal/calendar"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

type fixedNow struct {
	t time.Time
}

func (f fixedNow) Now() time.Time { return f.t }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestViewWindowRange(t *testing.T) {
	w := NewViewWindow(fixedNow{t: time.Date(2025, time.September, 15, 10, 0, 0, 0, time.UTC)})

	// до первого вида - текущая неделя
	from, to := w.Range()
	assert.Equal(t, "2025-09-14", calendar.DayISO(from))
	assert.Equal(t, "2025-09-20", calendar.DayISO(to))

	w.Observe(day(2025, time.October, 20), domain.ViewDay)
	from, to = w.Range()
	assert.Equal(t, "2025-10-20", calendar.DayISO(from))
	assert.Equal(t, "2025-10-20", calendar.DayISO(to))
}

func TestTickPicksOnlyVisible(t *testing.T) {
	appts := []domain.Appointment{
		{ID: "a1", ProviderName: "Anna", ServiceName: "Haircut", Date: "Mon, Sep 15", Time: "9:00 AM - 9:30 AM", ISODate: "2025-09-15"},
		{ID: "a2", ProviderName: "Boris", ServiceName: "Coloring", Date: "Wed, Oct 1", Time: "10:00 AM - 11:00 AM", ISODate: "2025-10-01"},
	}
	now := fixedNow{t: time.Date(2025, time.September, 15, 10, 0, 0, 0, time.UTC)}

	tests := []struct {
		name      string
		anchor    time.Time
		mode      domain.ViewMode
		wantFired bool
		wantName  string
	}{
		{name: "default week", wantFired: true, wantName: "Anna"},
		{name: "observed day of second", anchor: day(2025, time.October, 1), mode: domain.ViewDay, wantFired: true, wantName: "Boris"},
		{name: "nothing visible", anchor: day(2025, time.October, 20), mode: domain.ViewDay, wantFired: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := NewViewWindow(now)
			if !tt.anchor.IsZero() {
				window.Observe(tt.anchor, tt.mode)
			}

			sink := &recordingSink{}
			sim := NewSimulator(Config{Probability: 1}, &staticSource{appts: appts}, sink,
				newFakeClock(), &stubRand{rolls: []float64{0}}, nopLogger{})
			sim.WatchVisible(window, calendar.NewAugmenter(now))

			msg, fired := sim.Tick(context.Background())

			assert.Equal(t, tt.wantFired, fired)
			if tt.wantFired {
				assert.Contains(t, msg, tt.wantName)
			} else {
				assert.Empty(t, sink.messages)
			}
		})
	}
}
