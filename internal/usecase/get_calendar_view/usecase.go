package get_calendar_view

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-CalendarService/internal/calendar"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// UseCase use case построения представления календаря
type UseCase struct {
	feed         AppointmentFeed
	roster       RosterFeed
	availability AvailabilityReader
	augmenter    Augmenter
	observer     ViewObserver
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	feed AppointmentFeed,
	roster RosterFeed,
	availability AvailabilityReader,
	augmenter Augmenter,
	logger Logger,
) *UseCase {
	return &UseCase{
		feed:         feed,
		roster:       roster,
		availability: availability,
		augmenter:    augmenter,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// SetObserver подключает получателя видимого диапазона
func (uc *UseCase) SetObserver(observer ViewObserver) {
	uc.observer = observer
}

// Execute собирает заголовок, сетку дней, колонки мастеров и записи видимого диапазона
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCalendarView: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	anchor := req.Date
	if anchor.IsZero() {
		anchor = now
	}
	anchor = calendar.StartOfDay(anchor)

	uc.logger.Info("GetCalendarView: date=%s, mode=%s, provider=%q",
		calendar.DayISO(anchor), req.Mode, req.ProviderID)

	if uc.observer != nil {
		uc.observer.Observe(anchor, req.Mode)
	}

	// 2. Колонки мастеров
	roster, err := uc.roster.ListTeamMembers(ctx)
	if err != nil {
		uc.logger.Error("GetCalendarView: failed to list team members: %v", err)
		return nil, fmt.Errorf("%w: failed to list team members: %v", ErrInternal, err)
	}

	columns, err := filterColumns(roster, req.ProviderID)
	if err != nil {
		uc.logger.Warn("GetCalendarView: %v", err)
		return nil, err
	}

	// 3. Сетка дней
	visible := calendar.VisibleDays(anchor, req.Mode)
	todayISO := calendar.DayISO(now)
	days := make([]Day, 0, len(visible))
	inRange := make(map[string]bool, len(visible))

	for _, d := range visible {
		iso := calendar.DayISO(d)
		inRange[iso] = true
		days = append(days, Day{
			Date:         d,
			DayISO:       iso,
			InMonth:      req.Mode != domain.ViewMonth || d.Month() == anchor.Month(),
			IsToday:      iso == todayISO,
			Availability: uc.availability.Day(d.Weekday()),
			Breaks:       uc.availability.BreaksForDay(iso),
		})
	}

	// 4. Записи видимого диапазона
	appts, err := uc.feed.ListAppointments(ctx)
	if err != nil {
		uc.logger.Error("GetCalendarView: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	visibleProviders := make(map[string]bool, len(columns))
	for _, c := range columns {
		visibleProviders[c.ID] = true
	}
	filterByProvider := req.ProviderID != "" && req.ProviderID != domain.AllProviders

	events := make([]domain.AugmentedAppointment, 0, len(appts))
	for _, a := range uc.augmenter.AugmentAll(appts) {
		if !inRange[a.DateISO] {
			continue
		}
		if filterByProvider && !visibleProviders[a.ProviderID] {
			continue
		}
		events = append(events, a)
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].DateISO != events[j].DateISO {
			return events[i].DateISO < events[j].DateISO
		}
		if events[i].StartMinutes != events[j].StartMinutes {
			return events[i].StartMinutes < events[j].StartMinutes
		}
		return events[i].ProviderID < events[j].ProviderID
	})

	uc.logger.Info("GetCalendarView: %d days, %d columns, %d appointments", len(days), len(columns), len(events))

	return &Response{
		Header:       calendar.FormatHeader(anchor, req.Mode),
		Mode:         req.Mode,
		Anchor:       anchor,
		From:         visible[0],
		To:           visible[len(visible)-1],
		Days:         days,
		Columns:      columns,
		Appointments: events,
	}, nil
}
