package db

import "time"

// Reservation statuses. CANCELLED is terminal; rows are never deleted,
// cancellation is a status change so history is preserved.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

type Reservation struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Notes      string
	Backdrop   bool
	Lights     bool
	Assistant  bool
	TotalPrice int
	Status     string
	StartAt    time.Time
	EndAt      time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
