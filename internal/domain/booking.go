package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show" // устанавливается внешним процессом
)

// IsValid reports whether s is a known booking status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// AllBookingStatuses перечень статусов в порядке отображения статистики
var AllBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}

// PaymentStatus represents the payment state of a booking, owned by the payment collaborator
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// IsValid reports whether s is a known payment status
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded, PaymentFailed:
		return true
	}
	return false
}

// Booking represents a guest's reservation against exactly one slot
type Booking struct {
	ID             string
	UserID         string
	ExperienceID   string
	AvailabilityID string
	GuestCount     int

	// Price is fixed at creation
	TotalPrice float64
	ServiceFee float64
	Taxes      float64

	Status          BookingStatus
	PaymentStatus   PaymentStatus
	SpecialRequests *string

	CancellationReason *string
	ConfirmedAt        *time.Time
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HoldsCapacity returns true if the booking's guests are counted in the slot's bookedSlots
func (b *Booking) HoldsCapacity() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed || b.Status == StatusCompleted
}

// IsActive returns true if the booking has not reached a terminal state
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeConfirmed returns true if the booking can move to CONFIRMED
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeCompleted returns true if the booking can move to COMPLETED
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled.
// NO_SHOW can still be cancelled, for example when the guest is refunded.
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive() || b.Status == StatusNoShow
}

// Confirm moves the booking to CONFIRMED
func (b *Booking) Confirm(now time.Time) {
	b.Status = StatusConfirmed
	b.ConfirmedAt = &now
}

// Complete moves the booking to COMPLETED
func (b *Booking) Complete() {
	b.Status = StatusCompleted
}

// Cancel moves the booking to CANCELLED and keeps the previous reason when none is given
func (b *Booking) Cancel(now time.Time, reason *string) {
	b.Status = StatusCancelled
	b.CancelledAt = &now
	if reason != nil && *reason != "" {
		b.CancellationReason = reason
	}
}

// BookingFilter фильтр списка бронирований
type BookingFilter struct {
	Status        *BookingStatus
	PaymentStatus *PaymentStatus
	UserID        *string
	ExperienceID  *string
	HostID        *string    // Бронирования впечатлений площадок хоста
	StartDate     *time.Time // По дате слота, включительно
	EndDate       *time.Time // По дате слота, включительно
}

// BookingStats aggregate booking figures, revenue counts only PAID bookings
type BookingStats struct {
	TotalBookings int64
	StatusCounts  map[BookingStatus]int64
	TotalRevenue  float64
}
