package availability

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// Defaults начальное расписание для всех дней недели
type Defaults struct {
	Start      int
	End        int
	ClosedDays []time.Weekday
}

// Registry хранит окна доступности по дням недели и перерывы.
// Состояние живет только в памяти процесса.
type Registry struct {
	mu     sync.RWMutex
	days   [domain.DaysPerWeek]domain.AvailabilityDay
	breaks []domain.BreakBlock
	newID  func() string
	logger Logger
}

// NewRegistry создает реестр с семью днями по умолчанию
func NewRegistry(defaults Defaults, logger Logger) *Registry {
	if !(types.TimeRange{Start: defaults.Start, End: defaults.End}).IsValid() {
		defaults.Start = domain.DefaultOpenMinutes
		defaults.End = domain.DefaultCloseMinutes
	}

	closed := make(map[time.Weekday]bool, len(defaults.ClosedDays))
	for _, d := range defaults.ClosedDays {
		closed[d] = true
	}

	r := &Registry{
		newID:  func() string { return uuid.NewString() },
		logger: logger,
	}
	for i := range r.days {
		day := time.Weekday(i)
		r.days[i] = domain.AvailabilityDay{
			Day:     day,
			Start:   defaults.Start,
			End:     defaults.End,
			Enabled: !closed[day],
		}
	}

	return r
}

// Days возвращает копию всех семи дней
func (r *Registry) Days() [domain.DaysPerWeek]domain.AvailabilityDay {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.days
}

// Day возвращает окно для дня недели
func (r *Registry) Day(day time.Weekday) domain.AvailabilityDay {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.days[normalizeWeekday(day)]
}

// SetDay заменяет окно и флаг доступности для дня недели
func (r *Registry) SetDay(day time.Weekday, start, end int, enabled bool) (domain.AvailabilityDay, error) {
	if day < time.Sunday || day > time.Saturday {
		return domain.AvailabilityDay{}, fmt.Errorf("%w: %d", ErrInvalidWeekday, day)
	}
	if !(types.TimeRange{Start: start, End: end}).IsValid() {
		return domain.AvailabilityDay{}, fmt.Errorf("%w: %d-%d", ErrInvalidWindow, start, end)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.days[day] = domain.AvailabilityDay{Day: day, Start: start, End: end, Enabled: enabled}
	r.logger.Info("SetDay: %s set to %s, enabled=%t", day, types.FormatTimeRange(start, end), enabled)

	return r.days[day], nil
}

// Toggle переключает флаг доступности дня недели
func (r *Registry) Toggle(day time.Weekday) (domain.AvailabilityDay, error) {
	if day < time.Sunday || day > time.Saturday {
		return domain.AvailabilityDay{}, fmt.Errorf("%w: %d", ErrInvalidWeekday, day)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.days[day].Enabled = !r.days[day].Enabled
	r.logger.Info("Toggle: %s enabled=%t", day, r.days[day].Enabled)

	return r.days[day], nil
}

// AddBreak добавляет перерыв. Перерыв с тем же (dayISO, start, end) заменяется,
// при этом сохраняется его id, если у нового id не задан.
func (r *Registry) AddBreak(b domain.BreakBlock) (domain.BreakBlock, error) {
	if err := validateBreak(b); err != nil {
		return domain.BreakBlock{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.breaks {
		if r.breaks[i].Key() != b.Key() {
			continue
		}
		if b.ID == "" {
			b.ID = r.breaks[i].ID
		}
		r.breaks[i] = b
		r.logger.Info("AddBreak: replaced break id=%s on %s %s", b.ID, b.DayISO, b.Range())
		return b, nil
	}

	if b.ID == "" {
		b.ID = r.newID()
	}
	r.breaks = append(r.breaks, b)
	r.logger.Info("AddBreak: added break id=%s for provider=%s on %s %s", b.ID, b.ProviderID, b.DayISO, b.Range())

	return b, nil
}

// UpdateBreak заменяет поля перерыва по id
func (r *Registry) UpdateBreak(id string, b domain.BreakBlock) (domain.BreakBlock, error) {
	if err := validateBreak(b); err != nil {
		return domain.BreakBlock{}, err
	}
	b.ID = id

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return domain.BreakBlock{}, ErrBreakNotFound
	}
	r.breaks[idx] = b

	// другой перерыв с тем же ключом поглощается обновленным
	kept := r.breaks[:0]
	for _, existing := range r.breaks {
		if existing.ID != id && existing.Key() == b.Key() {
			continue
		}
		kept = append(kept, existing)
	}
	r.breaks = kept

	r.logger.Info("UpdateBreak: updated break id=%s on %s %s", id, b.DayISO, b.Range())
	return b, nil
}

// RemoveBreak удаляет перерыв по id
func (r *Registry) RemoveBreak(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return ErrBreakNotFound
	}
	r.breaks = append(r.breaks[:idx], r.breaks[idx+1:]...)
	r.logger.Info("RemoveBreak: removed break id=%s", id)

	return nil
}

// Breaks возвращает копию всех перерывов, отсортированных по дню и времени
func (r *Registry) Breaks() []domain.BreakBlock {
	r.mu.RLock()
	out := make([]domain.BreakBlock, len(r.breaks))
	copy(out, r.breaks)
	r.mu.RUnlock()

	sortBreaks(out)
	return out
}

// BreaksForDay возвращает перерывы указанного дня
func (r *Registry) BreaksForDay(dayISO string) []domain.BreakBlock {
	r.mu.RLock()
	out := make([]domain.BreakBlock, 0)
	for _, b := range r.breaks {
		if b.DayISO == dayISO {
			out = append(out, b)
		}
	}
	r.mu.RUnlock()

	sortBreaks(out)
	return out
}

// BreaksFor возвращает перерывы дня, действующие для мастера (включая общие)
func (r *Registry) BreaksFor(dayISO, providerID string) []domain.BreakBlock {
	r.mu.RLock()
	out := make([]domain.BreakBlock, 0)
	for i := range r.breaks {
		if r.breaks[i].AppliesTo(dayISO, providerID) {
			out = append(out, r.breaks[i])
		}
	}
	r.mu.RUnlock()

	sortBreaks(out)
	return out
}

// QuickEdit быстрое действие редактора: переключает доступность сегодняшнего дня
// и добавляет общий обеденный перерыв 12:00 PM - 1:00 PM на сегодня.
func (r *Registry) QuickEdit(today time.Time) (domain.AvailabilityDay, domain.BreakBlock, error) {
	day, err := r.Toggle(today.Weekday())
	if err != nil {
		return domain.AvailabilityDay{}, domain.BreakBlock{}, err
	}

	b, err := r.AddBreak(domain.BreakBlock{
		ProviderID: domain.AllProviders,
		DayISO:     today.Format(domain.DateFormat),
		Start:      domain.LunchBreakStart,
		End:        domain.LunchBreakEnd,
	})
	if err != nil {
		return domain.AvailabilityDay{}, domain.BreakBlock{}, err
	}

	return day, b, nil
}

func (r *Registry) indexOf(id string) int {
	for i := range r.breaks {
		if r.breaks[i].ID == id {
			return i
		}
	}
	return -1
}

func validateBreak(b domain.BreakBlock) error {
	if b.ProviderID == "" {
		return fmt.Errorf("%w: providerId is required", ErrInvalidBreak)
	}
	if _, err := time.Parse(domain.DateFormat, b.DayISO); err != nil {
		return fmt.Errorf("%w: dayIso must be YYYY-MM-DD", ErrInvalidBreak)
	}
	if !b.Range().IsValid() {
		return fmt.Errorf("%w: %d-%d", ErrInvalidWindow, b.Start, b.End)
	}
	return nil
}

func sortBreaks(breaks []domain.BreakBlock) {
	sort.SliceStable(breaks, func(i, j int) bool {
		if breaks[i].DayISO != breaks[j].DayISO {
			return breaks[i].DayISO < breaks[j].DayISO
		}
		return breaks[i].Start < breaks[j].Start
	})
}

func normalizeWeekday(day time.Weekday) time.Weekday {
	return ((day % domain.DaysPerWeek) + domain.DaysPerWeek) % domain.DaysPerWeek
}
