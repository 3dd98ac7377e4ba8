package domain

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// AvailabilityDay is the open window for one weekday
type AvailabilityDay struct {
	Day     time.Weekday
	Start   int
	End     int
	Enabled bool
}

// Window returns the open window in minutes
func (d *AvailabilityDay) Window() types.TimeRange {
	return types.TimeRange{Start: d.Start, End: d.End}
}

// Fits returns true if an event of the given duration can be placed inside the window
func (d *AvailabilityDay) Fits(duration int) bool {
	return d.Enabled && d.End-d.Start >= duration
}

// BreakBlock is a non-bookable interval for one provider or for everyone (AllProviders)
type BreakBlock struct {
	ID         string
	ProviderID string
	DayISO     string
	Start      int
	End        int
}

// BreakKey identifies a break by value, the registry dedupes on it
type BreakKey struct {
	DayISO string
	Start  int
	End    int
}

// Key returns the value key of the break
func (b *BreakBlock) Key() BreakKey {
	return BreakKey{DayISO: b.DayISO, Start: b.Start, End: b.End}
}

// Range returns the break interval in minutes
func (b *BreakBlock) Range() types.TimeRange {
	return types.TimeRange{Start: b.Start, End: b.End}
}

// AppliesTo returns true if the break blocks the given provider on the given day
func (b *BreakBlock) AppliesTo(dayISO, providerID string) bool {
	if b.DayISO != dayISO {
		return false
	}
	return b.ProviderID == AllProviders || b.ProviderID == providerID
}
