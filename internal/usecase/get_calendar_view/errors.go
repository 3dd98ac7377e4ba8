package get_calendar_view

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_calendar_view: invalid input data")

	// ErrProviderNotFound возвращается, когда фильтр указывает на неизвестного мастера
	ErrProviderNotFound = errors.New("get_calendar_view: provider not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_calendar_view: internal error")
)
