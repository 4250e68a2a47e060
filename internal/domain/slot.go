package domain

import (
	"time"

	"github.com/kar1timmins/DineLocal/pkg/types"
)

// SlotStatus represents the externally visible state of an availability slot
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
	SlotStatusBlocked   SlotStatus = "blocked"
)

// IsValid reports whether s is a known slot status
func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotStatusAvailable, SlotStatusBooked, SlotStatusBlocked:
		return true
	}
	return false
}

// Slot represents a unit of bookable capacity of an experience.
// Status is not stored: it is composed from the host block flag and the capacity counters.
type Slot struct {
	ID            string
	ExperienceID  string
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	PriceOverride *float64
	BookedSlots   int
	MaxSlots      int
	IsBlocked     bool
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Status returns BLOCKED when the host blocked the slot, BOOKED when capacity is exhausted
// and AVAILABLE otherwise
func (s *Slot) Status() SlotStatus {
	if s.IsBlocked {
		return SlotStatusBlocked
	}
	if s.BookedSlots >= s.MaxSlots {
		return SlotStatusBooked
	}
	return SlotStatusAvailable
}

// RemainingCapacity returns the number of guests the slot can still accept
func (s *Slot) RemainingCapacity() int {
	if s.BookedSlots >= s.MaxSlots {
		return 0
	}
	return s.MaxSlots - s.BookedSlots
}

// CanAccommodate returns true if the slot is available and has room for guestCount guests
func (s *Slot) CanAccommodate(guestCount int) bool {
	return s.Status() == SlotStatusAvailable && s.RemainingCapacity() >= guestCount
}

// PricePerGuest returns the slot override if present, otherwise the experience base price
func (s *Slot) PricePerGuest(basePrice float64) float64 {
	if s.PriceOverride != nil {
		return *s.PriceOverride
	}
	return basePrice
}

// HasBookings returns true if any guests are reserved against the slot
func (s *Slot) HasBookings() bool {
	return s.BookedSlots > 0
}

// SlotFilter фильтр списка слотов
type SlotFilter struct {
	ExperienceID *string     // Фильтр по впечатлению (опционально)
	StartDate    *time.Time  // Начало периода включительно (опционально)
	EndDate      *time.Time  // Конец периода включительно (опционально)
	Status       *SlotStatus // Фильтр по вычисляемому статусу (опционально)
	Limit        int         // 0 = без ограничения
	Offset       int
}
