package get_calendar_view

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Request модель запроса представления календаря
type Request struct {
	Date       time.Time       // Опорная дата (нулевая - сегодня)
	Mode       domain.ViewMode // day / week / month
	ProviderID string          // Фильтр по мастеру (пусто или "all" - все)
}

// Day ячейка календаря
type Day struct {
	Date         time.Time
	DayISO       string
	InMonth      bool // для месяца: день принадлежит отображаемому месяцу
	IsToday      bool
	Availability domain.AvailabilityDay
	Breaks       []domain.BreakBlock
}

// Response модель ответа с представлением календаря
type Response struct {
	Header string
	Mode   domain.ViewMode
	Anchor time.Time
	From   time.Time // первый видимый день
	To     time.Time // последний видимый день

	Days         []Day
	Columns      []domain.TeamMember
	Appointments []domain.AugmentedAppointment
}
