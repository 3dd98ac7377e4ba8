package domain

import "time"

// Calendar grid constants
const (
	SnapMinutes  = 30    // шаг сетки при перетаскивании
	AllProviders = "all" // перерыв действует для всех мастеров
	DaysPerWeek  = 7
	WeeksInMonth = 6 // сетка месяца всегда 6x7
)

// Default availability: 9:00 AM - 6:00 PM
const (
	DefaultOpenMinutes  = 9 * 60
	DefaultCloseMinutes = 18 * 60
)

// Canonical quick-edit break 12:00 PM - 1:00 PM
const (
	LunchBreakStart = 12 * 60
	LunchBreakEnd   = 13 * 60
)

// Banner timings
const (
	BannerTTL            = 2500 * time.Millisecond
	SimulatorInterval    = 5 * time.Second
	SimulatorProbability = 0.35
)

// Time format constants
const (
	DateFormat        = "2006-01-02" // YYYY-MM-DD
	DisplayDateFormat = "Mon, Jan 2" // Www, Mmm d
	MonthHeaderFormat = "Jan 2006"   // Mmm yyyy
	ShortDateFormat   = "Jan 2"      // Mmm d
)
