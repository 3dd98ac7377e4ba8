package reschedule_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/service/banners"
)

// AppointmentFeed интерфейс ленты записей
type AppointmentFeed interface {
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
}

// AppointmentUpdater интерфейс внешнего хранилища записей.
// Ошибка содержит причину отказа, которая показывается пользователю как есть.
type AppointmentUpdater interface {
	UpdateAppointment(ctx context.Context, id string, update domain.AppointmentUpdate) error
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

// BannerPoster интерфейс для показа баннеров
type BannerPoster interface {
	Success(message string) banners.Banner
	Error(message string) banners.Banner
}

// MetricsRecorder интерфейс для учета результатов переноса
type MetricsRecorder interface {
	ObserveReschedule(result string)
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
