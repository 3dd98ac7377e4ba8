package availability

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

type AvailabilityService interface {
	Days() [domain.DaysPerWeek]domain.AvailabilityDay
	Day(day time.Weekday) domain.AvailabilityDay
	SetDay(day time.Weekday, start, end int, enabled bool) (domain.AvailabilityDay, error)
	QuickEdit(today time.Time) (domain.AvailabilityDay, domain.BreakBlock, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
