package domain

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// Appointment is a booking record as delivered by the external store.
// Date and Time are display strings ("Mon, Sep 15", "9:00 AM - 9:30 AM").
type Appointment struct {
	ID           string
	ProviderID   string
	ProviderName string
	ServiceName  string
	Date         string
	Time         string

	// ISODate is an optional canonical "2006-01-02" day. When present it wins over Date.
	ISODate string
}

// AugmentedAppointment is an Appointment with derived grid placement.
// It is recomputed from the source on every pass and never stored.
type AugmentedAppointment struct {
	Appointment
	StartMinutes int
	EndMinutes   int
	Duration     int
	DateISO      string
}

// Range returns the appointment interval in minutes
func (a *AugmentedAppointment) Range() types.TimeRange {
	return types.TimeRange{Start: a.StartMinutes, End: a.EndMinutes}
}

// AppointmentUpdate is the only field set the calendar is allowed to rewrite
type AppointmentUpdate struct {
	Date       string
	Time       string
	ProviderID string
	UpdatedAt  time.Time

	// DateISO canonical day of the new Date, kept so the year survives the move
	DateISO string
}

// TeamMember is a provider column in the calendar
type TeamMember struct {
	ID   string
	Name string
}
