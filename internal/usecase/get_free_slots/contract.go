package get_free_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// AppointmentFeed интерфейс ленты записей
type AppointmentFeed interface {
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
}

// RosterFeed интерфейс списка мастеров
type RosterFeed interface {
	ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error)
}

// AvailabilityReader интерфейс реестра доступности
type AvailabilityReader interface {
	Day(day time.Weekday) domain.AvailabilityDay
	BreaksForDay(dayISO string) []domain.BreakBlock
}

// Augmenter интерфейс вычисления позиции записи на сетке
type Augmenter interface {
	AugmentAll(appts []domain.Appointment) []domain.AugmentedAppointment
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
