package entities

// AddonPrice is one optional upgrade and its flat surcharge.
type AddonPrice struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// PriceBook is the studio's published rate card: tiered session bases by
// duration plus flat add-on surcharges.
type PriceBook struct {
	BaseUpToHour      int          `json:"base_up_to_1h"`
	BaseUpToTwoHours  int          `json:"base_up_to_2h"`
	BaseUpToFourHours int          `json:"base_up_to_4h"`
	ExtraHourRate     int          `json:"extra_hour_rate"`
	Addons            []AddonPrice `json:"addons"`
}

// QuoteResponse is a computed total for a duration and add-on selection.
type QuoteResponse struct {
	DurationMinutes int            `json:"duration_minutes"`
	Addons          AddonSelection `json:"addons"`
	Total           int            `json:"total"`
}
