package cancel_booking

// CancelBookingRequest HTTP request model, тело запроса необязательно
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}
