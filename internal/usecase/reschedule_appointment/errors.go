package reschedule_appointment

import "errors"

var (
	// ErrValidation возвращается, когда целевой день недели закрыт для записи
	ErrValidation = errors.New("reschedule_appointment: validation failed")

	// ErrConflict возвращается, когда новый интервал пересекается с записью или перерывом
	ErrConflict = errors.New("reschedule_appointment: conflict")

	// ErrUnknown возвращается, когда внешнее хранилище отклонило обновление
	ErrUnknown = errors.New("reschedule_appointment: update rejected")

	// ErrGestureInFlight возвращается при попытке начать второй перенос той же записи
	ErrGestureInFlight = errors.New("reschedule_appointment: gesture already in flight")

	// ErrInvalidState возвращается при событии, недопустимом в текущем состоянии жеста
	ErrInvalidState = errors.New("reschedule_appointment: invalid gesture state")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
