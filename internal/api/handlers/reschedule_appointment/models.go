package reschedule_appointment

import (
	rescheduleAppointment "github.com/m04kA/SMC-CalendarService/internal/usecase/reschedule_appointment"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	OffsetY    float64 `json:"offsetY"`              // итоговое смещение в пикселях
	DayISO     string  `json:"dayIso,omitempty"`     // "2025-09-16"
	ProviderID string  `json:"providerId,omitempty"` // колонка мастера
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	AppointmentID string  `json:"appointmentId"`
	Result        string  `json:"result"`
	Committed     bool    `json:"committed"`
	DayISO        string  `json:"dayIso"`
	ProviderID    string  `json:"providerId"`
	Date          string  `json:"date,omitempty"`
	Time          string  `json:"time,omitempty"`
	Offset        float64 `json:"offset"`
	Reason        string  `json:"reason,omitempty"`
	Banner        string  `json:"banner"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(appointmentID string) *rescheduleAppointment.Request {
	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		OffsetY:       r.OffsetY,
		DayISO:        r.DayISO,
		ProviderID:    r.ProviderID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduleResponse {
	return &RescheduleResponse{
		AppointmentID: resp.AppointmentID,
		Result:        string(resp.Result),
		Committed:     resp.Committed,
		DayISO:        resp.DayISO,
		ProviderID:    resp.ProviderID,
		Date:          resp.Date,
		Time:          resp.Time,
		Offset:        resp.Offset,
		Reason:        resp.Reason,
		Banner:        resp.Banner,
	}
}
