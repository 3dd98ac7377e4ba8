package breaks

import (
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// BreakRequest HTTP request model
type BreakRequest struct {
	ProviderID string `json:"providerId"` // ID мастера или "all"
	DayISO     string `json:"dayIso"`     // "2025-09-15"
	Start      string `json:"start"`      // "12:00 PM"
	End        string `json:"end"`        // "1:00 PM"
}

// BreakResponse HTTP response model
type BreakResponse struct {
	ID           string `json:"id"`
	ProviderID   string `json:"providerId"`
	DayISO       string `json:"dayIso"`
	Start        string `json:"start"`
	End          string `json:"end"`
	StartMinutes int    `json:"startMinutes"`
	EndMinutes   int    `json:"endMinutes"`
}

// ToDomain конвертирует HTTP запрос в перерыв
func (r *BreakRequest) ToDomain() (domain.BreakBlock, error) {
	start, err := types.ParseClock(r.Start)
	if err != nil {
		return domain.BreakBlock{}, err
	}

	end, err := types.ParseClock(r.End)
	if err != nil {
		return domain.BreakBlock{}, err
	}
	if end == 0 {
		end = types.MinutesPerDay
	}

	providerID := r.ProviderID
	if providerID == "" {
		providerID = domain.AllProviders
	}

	return domain.BreakBlock{
		ProviderID: providerID,
		DayISO:     r.DayISO,
		Start:      start,
		End:        end,
	}, nil
}

// FromDomain конвертирует перерыв в HTTP response
func FromDomain(b domain.BreakBlock) BreakResponse {
	return BreakResponse{
		ID:           b.ID,
		ProviderID:   b.ProviderID,
		DayISO:       b.DayISO,
		Start:        types.To12h(b.Start),
		End:          types.To12h(b.End),
		StartMinutes: b.Start,
		EndMinutes:   b.End,
	}
}
