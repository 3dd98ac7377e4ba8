package get_calendar_view

import (
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	switch req.Mode {
	case domain.ViewDay, domain.ViewWeek, domain.ViewMonth:
	default:
		return fmt.Errorf("%w: unknown view mode %q", ErrInvalidInput, req.Mode)
	}

	return nil
}

// filterColumns оставляет колонку выбранного мастера
func filterColumns(roster []domain.TeamMember, providerID string) ([]domain.TeamMember, error) {
	if providerID == "" || providerID == domain.AllProviders {
		return roster, nil
	}

	for _, m := range roster {
		if m.ID == providerID {
			return []domain.TeamMember{m}, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, providerID)
}
