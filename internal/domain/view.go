package domain

import "errors"

// ViewMode selects the calendar layout
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// ErrInvalidViewMode возвращается для неизвестного режима отображения
var ErrInvalidViewMode = errors.New("invalid view mode")

// ParseViewMode converts a string into a ViewMode. Empty string means week.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case "":
		return ViewWeek, nil
	case ViewDay, ViewWeek, ViewMonth:
		return ViewMode(s), nil
	default:
		return "", ErrInvalidViewMode
	}
}
