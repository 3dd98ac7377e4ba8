package availability

import (
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// DayResponse окно доступности дня недели
type DayResponse struct {
	Weekday      int    `json:"weekday"`
	Name         string `json:"name"`
	Enabled      bool   `json:"enabled"`
	Start        string `json:"start"`
	End          string `json:"end"`
	StartMinutes int    `json:"startMinutes"`
	EndMinutes   int    `json:"endMinutes"`
}

// UpdateDayRequest HTTP request model. Пустые поля не меняются.
type UpdateDayRequest struct {
	Start   string `json:"start,omitempty"` // "9:00 AM"
	End     string `json:"end,omitempty"`   // "6:00 PM"
	Enabled *bool  `json:"enabled,omitempty"`
}

// QuickEditResponse результат быстрой правки
type QuickEditResponse struct {
	Day   DayResponse   `json:"day"`
	Break BreakResponse `json:"break"`
}

// BreakResponse перерыв
type BreakResponse struct {
	ID         string `json:"id"`
	ProviderID string `json:"providerId"`
	DayISO     string `json:"dayIso"`
	Start      string `json:"start"`
	End        string `json:"end"`
}

// Apply применяет запрос к текущему окну
func (r *UpdateDayRequest) Apply(current domain.AvailabilityDay) (int, int, bool, error) {
	start, end, enabled := current.Start, current.End, current.Enabled

	if r.Start != "" {
		m, err := types.ParseClock(r.Start)
		if err != nil {
			return 0, 0, false, err
		}
		start = m
	}

	if r.End != "" {
		m, err := types.ParseClock(r.End)
		if err != nil {
			return 0, 0, false, err
		}
		if m == 0 {
			m = types.MinutesPerDay
		}
		end = m
	}

	if r.Enabled != nil {
		enabled = *r.Enabled
	}

	return start, end, enabled, nil
}

// FromDomainDay конвертирует день в HTTP response
func FromDomainDay(d domain.AvailabilityDay) DayResponse {
	return DayResponse{
		Weekday:      int(d.Day),
		Name:         d.Day.String(),
		Enabled:      d.Enabled,
		Start:        types.To12h(d.Start),
		End:          types.To12h(d.End),
		StartMinutes: d.Start,
		EndMinutes:   d.End,
	}
}

// FromDomainBreak конвертирует перерыв в HTTP response
func FromDomainBreak(b domain.BreakBlock) BreakResponse {
	return BreakResponse{
		ID:         b.ID,
		ProviderID: b.ProviderID,
		DayISO:     b.DayISO,
		Start:      types.To12h(b.Start),
		End:        types.To12h(b.End),
	}
}
