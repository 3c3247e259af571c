package entities

import "time"

// DayConfig describes the studio's open hours and slot width. It is static
// configuration loaded at startup, read-only to the booking core.
type DayConfig struct {
	OpenHour    int
	CloseHour   int
	SlotMinutes int
	Location    *time.Location
}
