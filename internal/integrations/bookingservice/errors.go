package bookingservice

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена в сервисе бронирований
	ErrAppointmentNotFound = errors.New("bookingservice client: appointment not found")

	// ErrRejected возвращается, когда сервис бронирований отклонил изменение
	ErrRejected = errors.New("bookingservice client: update rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("bookingservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("bookingservice client: invalid response")
)

// RejectionError отказ сервиса бронирований.
// Error() возвращает причину как есть, она показывается пользователю.
type RejectionError struct {
	StatusCode int
	Reason     string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

func (e *RejectionError) Unwrap() error {
	return ErrRejected
}
