package reschedule_appointment

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-CalendarService/internal/calendar"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

const bannerPrefixRollback = "Cannot move appointment: "

// UseCase use case переноса записи перетаскиванием
type UseCase struct {
	feed         AppointmentFeed
	updater      AppointmentUpdater
	availability AvailabilityReader
	augmenter    Augmenter
	banners      BannerPoster
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
	cfg          Config

	// handles ID записей, по которым идет жест
	handlesMu sync.Mutex
	handles   map[string]struct{}

	// queue сериализует проверку и коммит в порядке завершения жестов
	queue *commitQueue
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	feed AppointmentFeed,
	updater AppointmentUpdater,
	availability AvailabilityReader,
	augmenter Augmenter,
	banners BannerPoster,
	metrics MetricsRecorder,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.PixelsPerMinute <= 0 {
		cfg.PixelsPerMinute = 1
	}
	if cfg.SnapMinutes <= 0 {
		cfg.SnapMinutes = domain.SnapMinutes
	}

	return &UseCase{
		feed:         feed,
		updater:      updater,
		availability: availability,
		augmenter:    augmenter,
		banners:      banners,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		cfg:          cfg,
		handles:      make(map[string]struct{}),
		queue:        newCommitQueue(),
	}
}

// Execute выполняет перенос целиком: начало жеста, одно движение, отпускание
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: appointment=%s, offsetY=%.1f, day=%q, provider=%q",
		req.AppointmentID, req.OffsetY, req.DayISO, req.ProviderID)

	gesture, err := uc.Begin(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	if err := gesture.Move(req.OffsetY); err != nil {
		gesture.Cancel()
		return nil, err
	}

	outcome, err := gesture.End(ctx, Drop{DayISO: req.DayISO, ProviderID: req.ProviderID})
	if outcome == nil {
		return nil, err
	}

	return &Response{
		AppointmentID: outcome.AppointmentID,
		Result:        outcome.Result,
		Committed:     outcome.Committed,
		DayISO:        outcome.DayISO,
		ProviderID:    outcome.ProviderID,
		Date:          outcome.Date,
		Time:          outcome.Time,
		Offset:        outcome.Offset,
		Reason:        outcome.Reason,
		Banner:        outcome.Banner,
	}, err
}

// Begin начинает жест над записью и захватывает ее эксклюзивно.
// Повторный Begin до завершения жеста возвращает ErrGestureInFlight.
func (uc *UseCase) Begin(ctx context.Context, appointmentID string) (*Gesture, error) {
	if appointmentID == "" {
		return nil, fmt.Errorf("%w: appointmentId is required", ErrInvalidInput)
	}

	if !uc.acquire(appointmentID) {
		uc.logger.Warn("RescheduleAppointment: gesture on appointment=%s already in flight", appointmentID)
		return nil, ErrGestureInFlight
	}

	source, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		uc.release(appointmentID)
		return nil, err
	}

	return &Gesture{
		uc:     uc,
		source: source,
		state:  StateDragging,
	}, nil
}

// InFlight сообщает, идет ли жест над записью
func (uc *UseCase) InFlight(appointmentID string) bool {
	uc.handlesMu.Lock()
	defer uc.handlesMu.Unlock()
	_, ok := uc.handles[appointmentID]
	return ok
}

// commit проверяет цель и вызывает внешнее обновление.
// Исходная запись не изменяется, пока хранилище не подтвердит перенос.
func (uc *UseCase) commit(ctx context.Context, g *Gesture, ticket uint64, dy float64, drop Drop) (*Outcome, error) {
	uc.queue.wait(ticket)
	defer uc.queue.done()

	src := g.source
	outcome := &Outcome{
		AppointmentID: src.ID,
		DayISO:        src.DateISO,
		ProviderID:    src.ProviderID,
		Start:         src.StartMinutes,
		End:           src.EndMinutes,
	}

	// 1. Целевой день и мастер
	dayISO := src.DateISO
	if drop.DayISO != "" {
		dayISO = drop.DayISO
	}
	providerID := src.ProviderID
	if drop.ProviderID != "" {
		providerID = drop.ProviderID
	}

	day, err := calendar.ParseDayISO(dayISO, uc.timeProvider.Now().Location())
	if err != nil {
		return uc.rollback(outcome, ResultValidation, ErrValidation, fmt.Sprintf("invalid day %q", dayISO))
	}

	// 2. Доступность дня недели
	avail := uc.availability.Day(day.Weekday())
	if !avail.Fits(src.Duration) {
		return uc.rollback(outcome, ResultValidation, ErrValidation, unavailableReason(avail, src.Duration))
	}

	// 3. Привязка к сетке и зажим в окно доступности
	start := targetStart(src.StartMinutes, dy, uc.cfg, avail, src.Duration)
	end := start + src.Duration

	// 4. Проверка пересечений по свежему списку записей
	appts, err := uc.feed.ListAppointments(ctx)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to list appointments: %v", err)
		return uc.rollback(outcome, ResultUnknown, ErrUnknown, err.Error())
	}

	augmented := uc.augmenter.AugmentAll(appts)
	breaks := uc.availability.BreaksForDay(dayISO)
	if conflict, found := calendar.FindConflict(augmented, src.ID, start, end, dayISO, providerID, breaks); found {
		return uc.rollback(outcome, ResultConflict, ErrConflict, conflict.Reason())
	}

	// 5. Коммит во внешнее хранилище
	g.setState(StateCommitting)

	update := domain.AppointmentUpdate{
		Date:       calendar.DisplayDate(day),
		Time:       types.FormatTimeRange(start, end),
		ProviderID: providerID,
		UpdatedAt:  uc.timeProvider.Now(),
		DateISO:    dayISO,
	}

	if err := uc.updater.UpdateAppointment(ctx, src.ID, update); err != nil {
		uc.logger.Warn("RescheduleAppointment: store rejected appointment=%s: %v", src.ID, err)
		return uc.rollback(outcome, ResultUnknown, ErrUnknown, err.Error())
	}

	outcome.Result = ResultCommitted
	outcome.Committed = true
	outcome.DayISO = dayISO
	outcome.ProviderID = providerID
	outcome.Start = start
	outcome.End = end
	outcome.Date = update.Date
	outcome.Time = update.Time
	outcome.Offset = float64(start-src.StartMinutes) * uc.cfg.PixelsPerMinute
	outcome.Banner = fmt.Sprintf("Appointment moved to %s, %s", update.Date, types.To12h(start))

	uc.banners.Success(outcome.Banner)
	uc.observe(ResultCommitted)
	uc.logger.Info("RescheduleAppointment: appointment=%s moved to %s %s provider=%s",
		src.ID, dayISO, update.Time, providerID)

	return outcome, nil
}

// rollback возвращает жест в исходную позицию и показывает причину отказа
func (uc *UseCase) rollback(outcome *Outcome, result Result, kind error, reason string) (*Outcome, error) {
	outcome.Result = result
	outcome.Committed = false
	outcome.Offset = 0
	outcome.Reason = reason
	outcome.Banner = bannerPrefixRollback + reason

	uc.banners.Error(outcome.Banner)
	uc.observe(result)
	uc.logger.Warn("RescheduleAppointment: appointment=%s rolled back: %s", outcome.AppointmentID, reason)

	return outcome, fmt.Errorf("%w: %s", kind, reason)
}

func (uc *UseCase) findAppointment(ctx context.Context, id string) (domain.AugmentedAppointment, error) {
	appts, err := uc.feed.ListAppointments(ctx)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to list appointments: %v", err)
		return domain.AugmentedAppointment{}, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	for _, appt := range appts {
		if appt.ID == id {
			return uc.augmenter.AugmentAll([]domain.Appointment{appt})[0], nil
		}
	}

	uc.logger.Warn("RescheduleAppointment: appointment=%s not found", id)
	return domain.AugmentedAppointment{}, ErrAppointmentNotFound
}

func (uc *UseCase) acquire(id string) bool {
	uc.handlesMu.Lock()
	defer uc.handlesMu.Unlock()

	if _, busy := uc.handles[id]; busy {
		return false
	}
	uc.handles[id] = struct{}{}
	return true
}

func (uc *UseCase) release(id string) {
	uc.handlesMu.Lock()
	delete(uc.handles, id)
	uc.handlesMu.Unlock()
}

func (uc *UseCase) observe(result Result) {
	if uc.metrics != nil {
		uc.metrics.ObserveReschedule(string(result))
	}
}
