package get_free_slots

import "time"

// Request модель запроса свободных слотов мастера на день
type Request struct {
	Date            time.Time // День (без времени)
	ProviderID      string    // ID мастера
	DurationMinutes int       // Длительность искомого интервала
}

// Response модель ответа со списком свободных слотов
type Response struct {
	DayISO     string
	ProviderID string
	Enabled    bool // день открыт для записи
	Slots      []Slot
}

// Slot свободный интервал на сетке
type Slot struct {
	Start int    // минуты от полуночи
	End   int    // минуты от полуночи
	Label string // "9:00 AM - 9:30 AM"
}
