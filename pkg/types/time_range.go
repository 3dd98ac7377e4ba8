package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinutesPerDay количество минут в сутках
	MinutesPerDay = 1440

	rangeSeparator = " - "
)

var (
	// ErrInvalidClock возвращается, когда строка не соответствует формату "h:mm AM/PM"
	ErrInvalidClock = errors.New("invalid clock string format")

	// DefaultTimeRange окно 9:00 AM - 9:30 AM, подставляется вместо некорректного диапазона
	DefaultTimeRange = TimeRange{Start: 9 * 60, End: 9*60 + 30}
)

// TimeRange интервал внутри суток в минутах от полуночи, [Start, End)
type TimeRange struct {
	Start int
	End   int
}

// Duration возвращает длительность интервала в минутах
func (r TimeRange) Duration() int {
	return r.End - r.Start
}

// IsValid проверяет, что интервал не пустой и лежит внутри суток
func (r TimeRange) IsValid() bool {
	return r.Start >= 0 && r.End <= MinutesPerDay && r.Start < r.End
}

// Overlaps проверяет пересечение полуоткрытых интервалов.
// Интервалы, которые только касаются границами, не пересекаются.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return max(r.Start, other.Start) < min(r.End, other.End)
}

// String форматирует интервал как "h:mm AM - h:mm PM"
func (r TimeRange) String() string {
	return FormatTimeRange(r.Start, r.End)
}

// ParseTimeRange разбирает строку вида "9:00 AM - 9:30 AM".
// Некорректный ввод не считается ошибкой: возвращается DefaultTimeRange.
// Конец диапазона "12:00 AM" трактуется как конец суток (1440).
func ParseTimeRange(s string) TimeRange {
	left, right, ok := strings.Cut(strings.TrimSpace(s), rangeSeparator)
	if !ok {
		return DefaultTimeRange
	}

	start, err := ParseClock(left)
	if err != nil {
		return DefaultTimeRange
	}

	end, err := ParseClock(right)
	if err != nil {
		return DefaultTimeRange
	}
	if end == 0 {
		end = MinutesPerDay
	}

	r := TimeRange{Start: start, End: end}
	if !r.IsValid() {
		return DefaultTimeRange
	}
	return r
}

// FormatTimeRange обратная операция к ParseTimeRange
func FormatTimeRange(start, end int) string {
	return To12h(start) + rangeSeparator + To12h(end)
}

// To12h форматирует минуты от полуночи как "h:mm AM/PM"
func To12h(minutes int) string {
	m := ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	hours := m / 60

	suffix := "AM"
	if hours >= 12 {
		suffix = "PM"
	}

	hours %= 12
	if hours == 0 {
		hours = 12
	}

	return fmt.Sprintf("%d:%02d %s", hours, m%60, suffix)
}

// ParseClock строго разбирает "h:mm AM/PM" в минуты от полуночи
func ParseClock(s string) (int, error) {
	clock, meridiem, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	hh, mm, ok := strings.Cut(clock, ":")
	if !ok || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 1 || hours > 12 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	mins, err := strconv.Atoi(mm)
	if err != nil || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	hours %= 12
	switch strings.ToUpper(strings.TrimSpace(meridiem)) {
	case "AM":
	case "PM":
		hours += 12
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	return hours*60 + mins, nil
}

// SnapToGrid округляет минуты до ближайшей линии сетки с шагом step.
// Ровно половина шага округляется вверх.
func SnapToGrid(minutes, step int) int {
	if step <= 0 {
		return minutes
	}
	if minutes < 0 {
		return -SnapToGrid(-minutes, step)
	}
	return (minutes + step/2) / step * step
}

// Clamp ограничивает значение диапазоном [lo, hi]
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
