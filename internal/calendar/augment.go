package calendar

import (
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

var monthsByAbbr = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// Augmenter вычисляет позицию записи на сетке
type Augmenter struct {
	clock TimeProvider
}

// NewAugmenter создает Augmenter. nil provider означает системное время.
func NewAugmenter(clock TimeProvider) *Augmenter {
	if clock == nil {
		clock = RealTimeProvider{}
	}
	return &Augmenter{clock: clock}
}

// Augment дополняет запись минутами начала/конца, длительностью и ключом дня
func (a *Augmenter) Augment(appt domain.Appointment) domain.AugmentedAppointment {
	r := types.ParseTimeRange(appt.Time)

	return domain.AugmentedAppointment{
		Appointment:  appt,
		StartMinutes: r.Start,
		EndMinutes:   r.End,
		Duration:     r.Duration(),
		DateISO:      a.resolveDateISO(appt),
	}
}

// AugmentAll дополняет список записей, сохраняя порядок
func (a *Augmenter) AugmentAll(appts []domain.Appointment) []domain.AugmentedAppointment {
	out := make([]domain.AugmentedAppointment, len(appts))
	for i := range appts {
		out[i] = a.Augment(appts[i])
	}
	return out
}

func (a *Augmenter) resolveDateISO(appt domain.Appointment) string {
	now := a.clock.Now()

	if appt.ISODate != "" {
		if _, err := time.Parse(domain.DateFormat, appt.ISODate); err == nil {
			return appt.ISODate
		}
	}

	if day, ok := parseDisplayDate(appt.Date, now); ok {
		return DayISO(day)
	}

	return DayISO(now)
}

// parseDisplayDate восстанавливает дату из строки "Mon, Sep 15".
// Год в строке обычно отсутствует, тогда берется текущий год из now:
// записи из декабря, просматриваемые в январе, получат неверный год.
func parseDisplayDate(s string, now time.Time) (time.Time, bool) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))

	var (
		month    time.Month
		day      int
		year     = now.Year()
		monthIdx = -1
	)

	for i, f := range fields {
		if len(f) < 3 {
			continue
		}
		if m, ok := monthsByAbbr[strings.ToLower(f[:3])]; ok {
			month = m
			monthIdx = i
			break
		}
	}
	if monthIdx < 0 || monthIdx+1 >= len(fields) {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(fields[monthIdx+1])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	for _, f := range fields[monthIdx+2:] {
		if len(f) == 4 {
			if y, err := strconv.Atoi(f); err == nil {
				year = y
			}
		}
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	if t.Month() != month {
		// 31 сентября и т.п.
		return time.Time{}, false
	}

	return t, true
}
