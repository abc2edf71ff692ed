package api

// Response envelopes shared across handlers.

type ErrorResponse struct {
	Error string `json:"error" example:"time slot already booked"`
}

type MessageResponse struct {
	Message string `json:"message" example:"User groups updated"`
}

// CancelResponse confirms a cancellation and names the booking it hit.
type CancelResponse struct {
	Message   string `json:"message" example:"Booking cancelled"`
	BookingID int    `json:"booking_id" example:"42"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
