package domain

// Experience is the read-only catalog view of an experience used by the booking core
type Experience struct {
	ID        string
	VenueID   string
	HostID    string
	Title     string
	BasePrice float64
	MinGuests int
	MaxGuests int
	IsActive  bool
}

// AcceptsGuestCount returns true if guestCount is within [MinGuests, MaxGuests]
func (e *Experience) AcceptsGuestCount(guestCount int) bool {
	return guestCount >= e.MinGuests && guestCount <= e.MaxGuests
}
