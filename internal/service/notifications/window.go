package notifications

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/calendar"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// ViewWindow запоминает дату и режим последнего построенного вида.
// До первого вида видна текущая неделя.
type ViewWindow struct {
	clock TimeProvider

	mu     sync.RWMutex
	anchor time.Time
	mode   domain.ViewMode
}

// NewViewWindow создает окно с видом по умолчанию
func NewViewWindow(clock TimeProvider) *ViewWindow {
	return &ViewWindow{
		clock: clock,
		mode:  domain.ViewWeek,
	}
}

// Observe запоминает дату и режим
func (w *ViewWindow) Observe(anchor time.Time, mode domain.ViewMode) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.anchor = anchor
	w.mode = mode
}

// Range возвращает первый и последний видимые дни
func (w *ViewWindow) Range() (time.Time, time.Time) {
	w.mu.RLock()
	anchor, mode := w.anchor, w.mode
	w.mu.RUnlock()

	if anchor.IsZero() {
		anchor = w.clock.Now()
	}
	return calendar.VisibleRange(anchor, mode)
}

// visibleOnly оставляет записи, чей день попадает в [from, to]
func visibleOnly(appts []domain.AugmentedAppointment, from, to time.Time) []domain.Appointment {
	fromISO, toISO := calendar.DayISO(from), calendar.DayISO(to)

	out := make([]domain.Appointment, 0, len(appts))
	for _, a := range appts {
		if a.DateISO >= fromISO && a.DateISO <= toISO {
			out = append(out, a.Appointment)
		}
	}
	return out
}
