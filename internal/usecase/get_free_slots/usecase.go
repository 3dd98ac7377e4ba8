package get_free_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/calendar"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// UseCase use case поиска свободных слотов мастера
type UseCase struct {
	feed         AppointmentFeed
	roster       RosterFeed
	availability AvailabilityReader
	augmenter    Augmenter
	snapMinutes  int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	feed AppointmentFeed,
	roster RosterFeed,
	availability AvailabilityReader,
	augmenter Augmenter,
	snapMinutes int,
	logger Logger,
) *UseCase {
	if snapMinutes <= 0 {
		snapMinutes = domain.SnapMinutes
	}

	return &UseCase{
		feed:         feed,
		roster:       roster,
		availability: availability,
		augmenter:    augmenter,
		snapMinutes:  snapMinutes,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает интервалы на сетке, куда запись заданной длительности
// можно перенести без конфликтов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetFreeSlots: validation failed: %v", err)
		return nil, err
	}

	date := calendar.StartOfDay(req.Date)
	dayISO := calendar.DayISO(date)
	now := uc.timeProvider.Now()

	uc.logger.Info("GetFreeSlots: provider=%s, date=%s, duration=%d", req.ProviderID, dayISO, req.DurationMinutes)

	// 2. Проверяем мастера
	members, err := uc.roster.ListTeamMembers(ctx)
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to list team members: %v", err)
		return nil, fmt.Errorf("%w: failed to list team members: %v", ErrInternal, err)
	}
	if !containsMember(members, req.ProviderID) {
		uc.logger.Warn("GetFreeSlots: provider=%s not found", req.ProviderID)
		return nil, ErrProviderNotFound
	}

	avail := uc.availability.Day(date.Weekday())
	resp := &Response{
		DayISO:     dayISO,
		ProviderID: req.ProviderID,
		Enabled:    avail.Enabled,
		Slots:      []Slot{},
	}

	// 3. Прошедшие и закрытые дни без слотов
	if isDateInPast(date, now) || !avail.Enabled {
		uc.logger.Info("GetFreeSlots: no slots on %s (past=%t, enabled=%t)", dayISO, isDateInPast(date, now), avail.Enabled)
		return resp, nil
	}

	// 4. Записи и перерывы дня
	appts, err := uc.feed.ListAppointments(ctx)
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	starts := generateGrid(avail, req.DurationMinutes, uc.snapMinutes)
	resp.Slots = freeSlots(
		starts,
		req.DurationMinutes,
		dayISO,
		req.ProviderID,
		uc.augmenter.AugmentAll(appts),
		uc.availability.BreaksForDay(dayISO),
		date,
		now,
	)

	uc.logger.Info("GetFreeSlots: %d of %d grid slots free", len(resp.Slots), len(starts))
	return resp, nil
}

func containsMember(members []domain.TeamMember, id string) bool {
	for _, m := range members {
		if m.ID == id {
			return true
		}
	}
	return false
}
