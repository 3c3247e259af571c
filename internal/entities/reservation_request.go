package entities

import "time"

// AddonSelection is the set of optional flat-surcharge upgrades. Each add-on
// is either included or not, never quantity-based.
type AddonSelection struct {
	Backdrop  bool `json:"backdrop"`
	Lights    bool `json:"lights"`
	Assistant bool `json:"assistant"`
}

type ReservationRequest struct {
	StartAt time.Time      `json:"start"`
	EndAt   time.Time      `json:"end"`
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Phone   string         `json:"phone,omitempty"`
	Notes   string         `json:"notes,omitempty"`
	Addons  AddonSelection `json:"addons"`
}

type ReservationResponse struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Phone      string         `json:"phone,omitempty"`
	Notes      string         `json:"notes,omitempty"`
	Addons     AddonSelection `json:"addons"`
	TotalPrice int            `json:"totalPrice"`
	Status     string         `json:"status"`
	StartAt    time.Time      `json:"startAt"`
	EndAt      time.Time      `json:"endAt"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}
