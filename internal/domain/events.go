package domain

import "time"

// Ключи маршрутизации событий жизненного цикла бронирования
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCompleted = "booking.completed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingUpdated   = "booking.updated"
)

// BookingEvent payload published after a booking change is committed
type BookingEvent struct {
	BookingID      string        `json:"bookingId"`
	UserID         string        `json:"userId"`
	ExperienceID   string        `json:"experienceId"`
	AvailabilityID string        `json:"availabilityId"`
	GuestCount     int           `json:"guestCount"`
	TotalPrice     float64       `json:"totalPrice"`
	Status         BookingStatus `json:"status"`
	PaymentStatus  PaymentStatus `json:"paymentStatus"`
	Reason         *string       `json:"reason,omitempty"`
	OccurredAt     time.Time     `json:"occurredAt"`
}

// NewBookingEvent builds the event payload from the committed booking
func NewBookingEvent(b *Booking, at time.Time) BookingEvent {
	return BookingEvent{
		BookingID:      b.ID,
		UserID:         b.UserID,
		ExperienceID:   b.ExperienceID,
		AvailabilityID: b.AvailabilityID,
		GuestCount:     b.GuestCount,
		TotalPrice:     b.TotalPrice,
		Status:         b.Status,
		PaymentStatus:  b.PaymentStatus,
		Reason:         b.CancellationReason,
		OccurredAt:     at,
	}
}
