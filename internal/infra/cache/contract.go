package cache

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// AppointmentStore внешнее хранилище записей
type AppointmentStore interface {
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, update domain.AppointmentUpdate) error
}

// RosterStore источник списка мастеров
type RosterStore interface {
	ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
