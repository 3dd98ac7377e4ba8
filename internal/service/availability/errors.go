package availability

import "errors"

var (
	// ErrInvalidWeekday возвращается для дня недели вне диапазона 0..6
	ErrInvalidWeekday = errors.New("availability: invalid weekday")

	// ErrInvalidWindow возвращается, когда start >= end или интервал выходит за пределы суток
	ErrInvalidWindow = errors.New("availability: invalid time window")

	// ErrInvalidBreak возвращается при некорректных полях перерыва
	ErrInvalidBreak = errors.New("availability: invalid break")

	// ErrBreakNotFound возвращается, когда перерыв не найден
	ErrBreakNotFound = errors.New("availability: break not found")
)
