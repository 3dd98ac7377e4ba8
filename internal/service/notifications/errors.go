package notifications

import "errors"

var (
	// ErrAlreadyRunning возвращается при повторном запуске симулятора
	ErrAlreadyRunning = errors.New("notifications: simulator already running")
)
