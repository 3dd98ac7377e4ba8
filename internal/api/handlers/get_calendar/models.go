package get_calendar

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/calendar"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	getCalendarView "github.com/m04kA/SMC-CalendarService/internal/usecase/get_calendar_view"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	Header       string                `json:"header"`
	Mode         string                `json:"mode"`
	Anchor       string                `json:"anchor"`
	From         string                `json:"from"`
	To           string                `json:"to"`
	Days         []DayResponse         `json:"days"`
	Columns      []ColumnResponse      `json:"columns"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// DayResponse ячейка календаря
type DayResponse struct {
	DayISO       string               `json:"dayIso"`
	Label        string               `json:"label"`
	Weekday      int                  `json:"weekday"`
	InMonth      bool                 `json:"inMonth"`
	IsToday      bool                 `json:"isToday"`
	Availability AvailabilityResponse `json:"availability"`
	Breaks       []BreakResponse      `json:"breaks"`
}

// AvailabilityResponse окно доступности дня
type AvailabilityResponse struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// BreakResponse перерыв
type BreakResponse struct {
	ID         string `json:"id"`
	ProviderID string `json:"providerId"`
	Start      string `json:"start"`
	End        string `json:"end"`
}

// ColumnResponse колонка мастера
type ColumnResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AppointmentResponse запись с позицией на сетке
type AppointmentResponse struct {
	ID           string `json:"id"`
	ProviderID   string `json:"providerId"`
	ProviderName string `json:"providerName"`
	ServiceName  string `json:"serviceName"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	DateISO      string `json:"dateIso"`
	StartMinutes int    `json:"startMinutes"`
	EndMinutes   int    `json:"endMinutes"`
	Duration     int    `json:"duration"`
}

// ToUseCaseRequest собирает запрос use case из query параметров
func ToUseCaseRequest(dateStr, modeStr, providerID string, loc *time.Location) (*getCalendarView.Request, error) {
	mode, err := domain.ParseViewMode(modeStr)
	if err != nil {
		return nil, err
	}

	req := &getCalendarView.Request{Mode: mode, ProviderID: providerID}
	if dateStr != "" {
		date, err := calendar.ParseDayISO(dateStr, loc)
		if err != nil {
			return nil, err
		}
		req.Date = date
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendarView.Response) *CalendarResponse {
	out := &CalendarResponse{
		Header:       resp.Header,
		Mode:         string(resp.Mode),
		Anchor:       calendar.DayISO(resp.Anchor),
		From:         calendar.DayISO(resp.From),
		To:           calendar.DayISO(resp.To),
		Days:         make([]DayResponse, 0, len(resp.Days)),
		Columns:      make([]ColumnResponse, 0, len(resp.Columns)),
		Appointments: make([]AppointmentResponse, 0, len(resp.Appointments)),
	}

	for _, d := range resp.Days {
		day := DayResponse{
			DayISO:  d.DayISO,
			Label:   calendar.DisplayDate(d.Date),
			Weekday: int(d.Date.Weekday()),
			InMonth: d.InMonth,
			IsToday: d.IsToday,
			Availability: AvailabilityResponse{
				Enabled: d.Availability.Enabled,
				Start:   types.To12h(d.Availability.Start),
				End:     types.To12h(d.Availability.End),
			},
			Breaks: make([]BreakResponse, 0, len(d.Breaks)),
		}
		for _, b := range d.Breaks {
			day.Breaks = append(day.Breaks, BreakResponse{
				ID:         b.ID,
				ProviderID: b.ProviderID,
				Start:      types.To12h(b.Start),
				End:        types.To12h(b.End),
			})
		}
		out.Days = append(out.Days, day)
	}

	for _, c := range resp.Columns {
		out.Columns = append(out.Columns, ColumnResponse{ID: c.ID, Name: c.Name})
	}

	for _, a := range resp.Appointments {
		out.Appointments = append(out.Appointments, AppointmentResponse{
			ID:           a.ID,
			ProviderID:   a.ProviderID,
			ProviderName: a.ProviderName,
			ServiceName:  a.ServiceName,
			Date:         a.Date,
			Time:         a.Time,
			DateISO:      a.DateISO,
			StartMinutes: a.StartMinutes,
			EndMinutes:   a.EndMinutes,
			Duration:     a.Duration,
		})
	}

	return out
}
