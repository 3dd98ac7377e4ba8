package reschedule_appointment

// State состояние жеста перетаскивания
type State string

const (
	StateIdle       State = "idle"
	StateDragging   State = "dragging"
	StateReleasing  State = "releasing"
	StateCommitting State = "committing"
)

// Result итог переноса, используется как метка метрики
type Result string

const (
	ResultCommitted  Result = "committed"
	ResultValidation Result = "validation"
	ResultConflict   Result = "conflict"
	ResultUnknown    Result = "unknown"
)

// Config параметры перетаскивания
type Config struct {
	PixelsPerMinute float64 // масштаб сетки по вертикали
	SnapMinutes     int     // шаг привязки
}

// Drop место, куда отпущена запись. Пустые поля означают тот же день и того же мастера.
type Drop struct {
	DayISO     string
	ProviderID string
}

// Outcome результат завершения жеста
type Outcome struct {
	AppointmentID string
	Result        Result
	Committed     bool

	DayISO     string // итоговый день
	ProviderID string // итоговый мастер
	Start      int    // итоговое начало в минутах
	End        int    // итоговый конец в минутах
	Date       string // "Mon, Sep 15" (только при успехе)
	Time       string // "9:00 AM - 9:30 AM" (только при успехе)

	// Offset смещение, на котором жест визуально остановился: новый слот или 0 при откате
	Offset float64

	Reason string // причина отказа как есть
	Banner string // текст показанного баннера
}

// Request модель запроса на перенос записи целиком (без промежуточных движений)
type Request struct {
	AppointmentID string  // ID записи
	OffsetY       float64 // итоговое вертикальное смещение в пикселях
	DayISO        string  // целевой день (опционально)
	ProviderID    string  // целевой мастер (опционально)
}

// Response модель ответа на перенос
type Response struct {
	AppointmentID string
	Result        Result
	Committed     bool
	DayISO        string
	ProviderID    string
	Date          string
	Time          string
	Offset        float64
	Reason        string
	Banner        string
}
