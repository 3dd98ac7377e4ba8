package notifications

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/service/banners"
)

// AppointmentSource лента записей, видимых в календаре
type AppointmentSource interface {
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
}

// BannerSink куда публикуются уведомления
type BannerSink interface {
	Info(message string) banners.Banner
}

// VisibleWindow видимый в календаре диапазон дней, включительно
type VisibleWindow interface {
	Range() (time.Time, time.Time)
}

// Augmenter вычисляет день записи на сетке
type Augmenter interface {
	AugmentAll(appts []domain.Appointment) []domain.AugmentedAppointment
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Ticker абстракция над time.Ticker
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock фабрика тикеров (для тестирования)
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

// Rand источник случайности; *rand.Rand удовлетворяет интерфейсу
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealClock создает настоящие тикеры
type RealClock struct{}

// NewTicker создает time.Ticker
func (RealClock) NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }
