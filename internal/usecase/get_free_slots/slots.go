package get_free_slots

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/calendar"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// generateGrid перечисляет старты с шагом step внутри окна доступности,
// так чтобы интервал длительностью duration помещался целиком
func generateGrid(avail domain.AvailabilityDay, duration, step int) []int {
	if !avail.Fits(duration) {
		return []int{}
	}

	starts := make([]int, 0, (avail.End-avail.Start)/step+1)
	for start := avail.Start; start+duration <= avail.End; start += step {
		starts = append(starts, start)
	}
	return starts
}

// freeSlots оставляет старты без пересечений с записями мастера и перерывами.
// Для сегодняшнего дня слоты, начавшиеся до now, отбрасываются.
func freeSlots(
	starts []int,
	duration int,
	dayISO string,
	providerID string,
	appointments []domain.AugmentedAppointment,
	breaks []domain.BreakBlock,
	date time.Time,
	now time.Time,
) []Slot {
	minStart := 0
	if isSameDay(date, now) {
		minStart = now.Hour()*60 + now.Minute()
	}

	result := make([]Slot, 0, len(starts))
	for _, start := range starts {
		if start < minStart {
			continue
		}
		end := start + duration
		if calendar.HasConflict(appointments, "", start, end, dayISO, providerID, breaks) {
			continue
		}
		result = append(result, Slot{
			Start: start,
			End:   end,
			Label: types.FormatTimeRange(start, end),
		})
	}

	return result
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	return calendar.StartOfDay(date).Before(calendar.StartOfDay(now))
}
