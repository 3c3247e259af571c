package entities

import "time"

// Slot is a fixed-width candidate booking interval. Slots are never
// persisted; they are recomputed on every availability request.
type Slot struct {
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	Available bool      `json:"available"`
}

// DayAvailability tags every slot of one calendar day as bookable or not.
type DayAvailability struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}
