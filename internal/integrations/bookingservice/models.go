package bookingservice

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// AppointmentDTO модель записи из сервиса бронирований
type AppointmentDTO struct {
	ID           string `json:"id"`
	ProviderID   string `json:"providerId"`
	ProviderName string `json:"providerName"`
	ServiceName  string `json:"serviceName"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	ISODate      string `json:"isoDate,omitempty"`
}

// ToDomain конвертирует DTO в доменную модель
func (a AppointmentDTO) ToDomain() domain.Appointment {
	return domain.Appointment{
		ID:           a.ID,
		ProviderID:   a.ProviderID,
		ProviderName: a.ProviderName,
		ServiceName:  a.ServiceName,
		Date:         a.Date,
		Time:         a.Time,
		ISODate:      a.ISODate,
	}
}

// TeamMemberDTO модель мастера из сервиса бронирований
type TeamMemberDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UpdateAppointmentRequest тело запроса на перенос записи
type UpdateAppointmentRequest struct {
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	ProviderID string    `json:"providerId"`
	IsoDate    string    `json:"isoDate,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// FromDomainUpdate собирает тело запроса из доменного изменения
func FromDomainUpdate(u domain.AppointmentUpdate) UpdateAppointmentRequest {
	return UpdateAppointmentRequest{
		Date:       u.Date,
		Time:       u.Time,
		ProviderID: u.ProviderID,
		IsoDate:    u.DateISO,
		UpdatedAt:  u.UpdatedAt,
	}
}

// ErrorResponse модель ошибки от сервиса бронирований
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
