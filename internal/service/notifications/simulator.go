package notifications

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

var updateTemplates = []string{
	"%s: client confirmed %s (%s)",
	"%s added a note to %s (%s)",
	"%s: %s (%s) was viewed by the client",
}

// Config параметры симулятора
type Config struct {
	Interval    time.Duration
	Probability float64
}

// Simulator периодически показывает баннер о вымышленном внешнем изменении
// одной из видимых записей. Данные записей не изменяет.
type Simulator struct {
	cfg    Config
	source AppointmentSource
	sink   BannerSink
	clock  Clock
	logger Logger

	// window и augmenter ограничивают выбор видимыми записями, nil - вся лента
	window    VisibleWindow
	augmenter Augmenter

	rndMu sync.Mutex
	rnd   Rand

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSimulator создает симулятор. nil clock и rnd заменяются реальными.
func NewSimulator(cfg Config, source AppointmentSource, sink BannerSink, clock Clock, rnd Rand, logger Logger) *Simulator {
	if cfg.Interval <= 0 {
		cfg.Interval = domain.SimulatorInterval
	}
	if cfg.Probability < 0 || cfg.Probability > 1 {
		cfg.Probability = domain.SimulatorProbability
	}
	if clock == nil {
		clock = RealClock{}
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Simulator{
		cfg:    cfg,
		source: source,
		sink:   sink,
		clock:  clock,
		rnd:    rnd,
		logger: logger,
	}
}

// WatchVisible ограничивает выбор записями видимого диапазона.
// Вызывается до Start.
func (s *Simulator) WatchVisible(window VisibleWindow, augmenter Augmenter) {
	s.window = window
	s.augmenter = augmenter
}

// Start запускает фоновый цикл. Цикл останавливается по Stop или отмене ctx.
func (s *Simulator) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrAlreadyRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	ticker := s.clock.NewTicker(s.cfg.Interval)

	s.cancel = cancel
	s.done = done

	go func() {
		defer close(done)
		defer ticker.Stop()
		defer s.finish(done)

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C():
				s.Tick(loopCtx)
			}
		}
	}()

	s.logger.Info("Simulator: started, interval=%s, probability=%.2f", s.cfg.Interval, s.cfg.Probability)
	return nil
}

// Stop останавливает цикл и ждет его завершения. Повторный вызов безопасен.
func (s *Simulator) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
	s.logger.Info("Simulator: stopped")
}

// finish сбрасывает состояние после выхода цикла, если его не сбросил Stop
// и не перезаписал новый Start
func (s *Simulator) finish(done chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done != done {
		return
	}
	s.cancel()
	s.cancel, s.done = nil, nil
	s.logger.Info("Simulator: loop exited on context cancel")
}

// Running сообщает, запущен ли цикл
func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Tick выполняет один шаг: с вероятностью Probability выбирает случайную видимую запись
// и показывает баннер. Возвращает текст баннера и true, если баннер был показан.
func (s *Simulator) Tick(ctx context.Context) (string, bool) {
	s.rndMu.Lock()
	roll := s.rnd.Float64()
	s.rndMu.Unlock()

	if roll >= s.cfg.Probability {
		return "", false
	}

	appts, err := s.source.ListAppointments(ctx)
	if err != nil {
		s.logger.Warn("Simulator: failed to list appointments: %v", err)
		return "", false
	}
	if s.window != nil && s.augmenter != nil {
		from, to := s.window.Range()
		appts = visibleOnly(s.augmenter.AugmentAll(appts), from, to)
	}
	if len(appts) == 0 {
		return "", false
	}

	s.rndMu.Lock()
	appt := appts[s.rnd.Intn(len(appts))]
	template := updateTemplates[s.rnd.Intn(len(updateTemplates))]
	s.rndMu.Unlock()

	msg := fmt.Sprintf(template, appt.ProviderName, appt.ServiceName, appt.Time)
	s.sink.Info(msg)

	return msg, true
}
