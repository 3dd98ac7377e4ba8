package get_free_slots

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/calendar"
	getFreeSlots "github.com/m04kA/SMC-CalendarService/internal/usecase/get_free_slots"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// FreeSlotsResponse HTTP response model
type FreeSlotsResponse struct {
	DayISO     string         `json:"dayIso"`
	ProviderID string         `json:"providerId"`
	Enabled    bool           `json:"enabled"`
	Slots      []SlotResponse `json:"slots"`
}

// SlotResponse свободный интервал
type SlotResponse struct {
	Start        string `json:"start"`
	End          string `json:"end"`
	Time         string `json:"time"`
	StartMinutes int    `json:"startMinutes"`
	EndMinutes   int    `json:"endMinutes"`
}

// ToUseCaseRequest собирает запрос use case из path и query параметров
func ToUseCaseRequest(providerID, dateStr, durationStr string, loc *time.Location) (*getFreeSlots.Request, error) {
	date, err := calendar.ParseDayISO(dateStr, loc)
	if err != nil {
		return nil, err
	}

	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid duration %q: %w", durationStr, err)
	}

	return &getFreeSlots.Request{
		Date:            date,
		ProviderID:      providerID,
		DurationMinutes: duration,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getFreeSlots.Response) FreeSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Start:        types.To12h(s.Start),
			End:          types.To12h(s.End),
			Time:         s.Label,
			StartMinutes: s.Start,
			EndMinutes:   s.End,
		})
	}

	return FreeSlotsResponse{
		DayISO:     resp.DayISO,
		ProviderID: resp.ProviderID,
		Enabled:    resp.Enabled,
		Slots:      slots,
	}
}
