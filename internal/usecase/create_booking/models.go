package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID          string  // ID гостя
	ExperienceID    string  // ID впечатления
	SlotID          string  // ID слота (availability)
	GuestCount      int     // Количество гостей
	SpecialRequests *string // Пожелания гостя (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             string // ID созданного бронирования
	UserID         string
	ExperienceID   string
	AvailabilityID string
	GuestCount     int

	// Цена, зафиксированная при создании
	BaseTotal  float64
	ServiceFee float64
	Taxes      float64
	TotalPrice float64

	Status          string // Всегда pending
	PaymentStatus   string // Всегда pending
	SpecialRequests *string

	// Состояние слота после резервирования
	SlotBookedSlots int
	SlotStatus      string

	CreatedAt time.Time
	UpdatedAt time.Time
}
