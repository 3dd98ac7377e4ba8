package calendar

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// StartOfDay обнуляет время, сохраняя локальные поля даты
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekDays возвращает неделю с воскресенья по субботу, содержащую date
func WeekDays(date time.Time) [domain.DaysPerWeek]time.Time {
	var days [domain.DaysPerWeek]time.Time

	sunday := StartOfDay(date).AddDate(0, 0, -int(date.Weekday()))
	for i := range days {
		days[i] = sunday.AddDate(0, 0, i)
	}

	return days
}

// MonthMatrix возвращает сетку 6x7, начиная с воскресенья на/перед первым числом месяца.
// Всегда 42 ячейки: короткие месяцы дополняются днями соседних месяцев.
func MonthMatrix(date time.Time) [domain.WeeksInMonth][domain.DaysPerWeek]time.Time {
	var grid [domain.WeeksInMonth][domain.DaysPerWeek]time.Time

	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))

	for week := range grid {
		for day := range grid[week] {
			grid[week][day] = start.AddDate(0, 0, week*domain.DaysPerWeek+day)
		}
	}

	return grid
}

// VisibleDays возвращает дни, отображаемые в указанном режиме, по порядку
func VisibleDays(date time.Time, mode domain.ViewMode) []time.Time {
	switch mode {
	case domain.ViewDay:
		return []time.Time{StartOfDay(date)}
	case domain.ViewMonth:
		grid := MonthMatrix(date)
		days := make([]time.Time, 0, domain.WeeksInMonth*domain.DaysPerWeek)
		for _, week := range grid {
			days = append(days, week[:]...)
		}
		return days
	default:
		week := WeekDays(date)
		return week[:]
	}
}

// VisibleRange первый и последний видимые дни для режима
func VisibleRange(date time.Time, mode domain.ViewMode) (time.Time, time.Time) {
	days := VisibleDays(date, mode)
	return days[0], days[len(days)-1]
}

// FormatHeader формирует заголовок календаря:
// day - "Mon, Sep 15", week - "Sep 14 - Sep 20", month - "Sep 2025"
func FormatHeader(date time.Time, mode domain.ViewMode) string {
	switch mode {
	case domain.ViewDay:
		return date.Format(domain.DisplayDateFormat)
	case domain.ViewMonth:
		return date.Format(domain.MonthHeaderFormat)
	default:
		week := WeekDays(date)
		return fmt.Sprintf("%s - %s",
			week[0].Format(domain.ShortDateFormat),
			week[domain.DaysPerWeek-1].Format(domain.ShortDateFormat))
	}
}

// DayISO ключ дня в формате YYYY-MM-DD по локальным полям
func DayISO(t time.Time) string {
	return t.Format(domain.DateFormat)
}

// DisplayDate дата в формате записи: "Mon, Sep 15"
func DisplayDate(t time.Time) string {
	return t.Format(domain.DisplayDateFormat)
}

// ParseDayISO разбирает YYYY-MM-DD как локальную полночь в loc
func ParseDayISO(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(domain.DateFormat, s, loc)
}
