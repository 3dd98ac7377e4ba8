package banners

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Kind тип баннера
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// maxBanners ограничение на число одновременно хранимых баннеров
const maxBanners = 20

// Banner временное уведомление поверх календаря
type Banner struct {
	Kind      Kind
	Message   string
	ShownAt   time.Time
	ExpiresAt time.Time
}

// Board хранит активные баннеры до истечения их TTL
type Board struct {
	mu       sync.Mutex
	clock    TimeProvider
	recorder MetricsRecorder
	banners  []Banner
}

// NewBoard создает доску баннеров. recorder может быть nil.
func NewBoard(clock TimeProvider, recorder MetricsRecorder) *Board {
	if clock == nil {
		clock = RealTimeProvider{}
	}
	return &Board{clock: clock, recorder: recorder}
}

// Show показывает баннер на ttl (domain.BannerTTL, если ttl <= 0)
func (b *Board) Show(kind Kind, message string, ttl time.Duration) Banner {
	if ttl <= 0 {
		ttl = domain.BannerTTL
	}

	now := b.clock.Now()
	banner := Banner{
		Kind:      kind,
		Message:   message,
		ShownAt:   now,
		ExpiresAt: now.Add(ttl),
	}

	b.mu.Lock()
	b.prune(now)
	b.banners = append(b.banners, banner)
	if len(b.banners) > maxBanners {
		b.banners = b.banners[len(b.banners)-maxBanners:]
	}
	b.mu.Unlock()

	if b.recorder != nil {
		b.recorder.ObserveBanner(string(kind))
	}

	return banner
}

// Success показывает баннер об успешном действии
func (b *Board) Success(message string) Banner {
	return b.Show(KindSuccess, message, 0)
}

// Error показывает баннер об ошибке
func (b *Board) Error(message string) Banner {
	return b.Show(KindError, message, 0)
}

// Info показывает информационный баннер
func (b *Board) Info(message string) Banner {
	return b.Show(KindInfo, message, 0)
}

// Active возвращает неистекшие баннеры, новые первыми
func (b *Board) Active() []Banner {
	now := b.clock.Now()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.prune(now)

	out := make([]Banner, len(b.banners))
	for i := range b.banners {
		out[len(b.banners)-1-i] = b.banners[i]
	}
	return out
}

func (b *Board) prune(now time.Time) {
	kept := b.banners[:0]
	for _, banner := range b.banners {
		if now.Before(banner.ExpiresAt) {
			kept = append(kept, banner)
		}
	}
	b.banners = kept
}
