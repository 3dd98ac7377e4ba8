package get_free_slots

import (
	"fmt"

	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.ProviderID == "" {
		return fmt.Errorf("%w: providerId is required", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 || req.DurationMinutes > types.MinutesPerDay {
		return fmt.Errorf("%w: duration must be in 1..1440 minutes", ErrInvalidInput)
	}

	return nil
}
