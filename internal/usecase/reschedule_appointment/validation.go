package reschedule_appointment

import (
	"fmt"
	"math"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.AppointmentID == "" {
		return fmt.Errorf("%w: appointmentId is required", ErrInvalidInput)
	}

	if math.IsNaN(req.OffsetY) || math.IsInf(req.OffsetY, 0) {
		return fmt.Errorf("%w: offsetY must be a finite number", ErrInvalidInput)
	}

	return nil
}

// targetStart переводит смещение в минуты, привязывает к сетке и зажимает
// в окно [avail.Start, avail.End - duration]
func targetStart(originalStart int, dy float64, cfg Config, avail domain.AvailabilityDay, duration int) int {
	raw := float64(originalStart) + dy/cfg.PixelsPerMinute
	snapped := types.SnapToGrid(int(math.Round(raw)), cfg.SnapMinutes)
	return types.Clamp(snapped, avail.Start, avail.End-duration)
}

// unavailableReason причина отказа для закрытого дня
func unavailableReason(avail domain.AvailabilityDay, duration int) string {
	if !avail.Enabled {
		return fmt.Sprintf("%s is not available", avail.Day)
	}
	return fmt.Sprintf("%d min does not fit into working hours %s", duration, avail.Window())
}
