package api

// Reservation
type CreateReservationResponse struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	TotalPrice int    `json:"totalPrice"`
	Message    string `json:"message"`
}

// Status update
type StatusUpdateRequest struct {
	Status string `json:"status"`
}
type StatusUpdateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
