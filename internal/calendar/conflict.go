package calendar

import (
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// ConflictKind тип пересечения
type ConflictKind string

const (
	ConflictAppointment ConflictKind = "appointment"
	ConflictBreak       ConflictKind = "break"
)

// Conflict первое найденное пересечение
type Conflict struct {
	Kind  ConflictKind
	ID    string
	Label string
	Range types.TimeRange
}

// Reason человекочитаемое описание конфликта
func (c Conflict) Reason() string {
	if c.Kind == ConflictBreak {
		return fmt.Sprintf("overlaps a break (%s)", c.Range)
	}
	return fmt.Sprintf("overlaps %s (%s)", c.Label, c.Range)
}

// FindConflict ищет первое пересечение предлагаемого интервала [start, end)
// с записями того же мастера в тот же день (кроме excludeID) и с перерывами,
// действующими для мастера или для всех.
func FindConflict(
	appointments []domain.AugmentedAppointment,
	excludeID string,
	start, end int,
	dayISO string,
	providerID string,
	breaks []domain.BreakBlock,
) (Conflict, bool) {
	proposed := types.TimeRange{Start: start, End: end}

	for i := range appointments {
		appt := &appointments[i]
		if appt.ID == excludeID || appt.DateISO != dayISO || appt.ProviderID != providerID {
			continue
		}
		if proposed.Overlaps(appt.Range()) {
			return Conflict{
				Kind:  ConflictAppointment,
				ID:    appt.ID,
				Label: appt.ServiceName,
				Range: appt.Range(),
			}, true
		}
	}

	for i := range breaks {
		b := &breaks[i]
		if !b.AppliesTo(dayISO, providerID) {
			continue
		}
		if proposed.Overlaps(b.Range()) {
			return Conflict{
				Kind:  ConflictBreak,
				ID:    b.ID,
				Range: b.Range(),
			}, true
		}
	}

	return Conflict{}, false
}

// HasConflict проверяет, пересекается ли [start, end) с чем-либо
func HasConflict(
	appointments []domain.AugmentedAppointment,
	excludeID string,
	start, end int,
	dayISO string,
	providerID string,
	breaks []domain.BreakBlock,
) bool {
	_, found := FindConflict(appointments, excludeID, start, end, dayISO, providerID, breaks)
	return found
}
