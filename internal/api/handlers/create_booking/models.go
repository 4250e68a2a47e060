package create_booking

import (
	"time"

	createBooking "github.com/kar1timmins/DineLocal/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model. Гость берется из X-User-ID.
type CreateBookingRequest struct {
	ExperienceID    string  `json:"experienceId" validate:"required,uuid"`
	AvailabilityID  string  `json:"availabilityId" validate:"required,uuid"`
	GuestCount      int     `json:"guestCount" validate:"required,gt=0"`
	SpecialRequests *string `json:"specialRequests,omitempty" validate:"omitempty,max=1000"`
}

// PriceResponse разбивка цены
type PriceResponse struct {
	BaseTotal  float64 `json:"baseTotal"`
	ServiceFee float64 `json:"serviceFee"`
	Taxes      float64 `json:"taxes"`
	TotalPrice float64 `json:"totalPrice"`
}

// SlotStateResponse состояние слота после резервирования
type SlotStateResponse struct {
	BookedSlots int    `json:"bookedSlots"`
	Status      string `json:"status"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              string            `json:"id"`
	UserID          string            `json:"userId"`
	ExperienceID    string            `json:"experienceId"`
	AvailabilityID  string            `json:"availabilityId"`
	GuestCount      int               `json:"guestCount"`
	Price           PriceResponse     `json:"price"`
	Status          string            `json:"status"`
	PaymentStatus   string            `json:"paymentStatus"`
	SpecialRequests *string           `json:"specialRequests,omitempty"`
	Slot            SlotStateResponse `json:"availability"`
	CreatedAt       string            `json:"createdAt"`
	UpdatedAt       string            `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) *createBooking.Request {
	return &createBooking.Request{
		UserID:          userID,
		ExperienceID:    r.ExperienceID,
		SlotID:          r.AvailabilityID,
		GuestCount:      r.GuestCount,
		SpecialRequests: r.SpecialRequests,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		UserID:         resp.UserID,
		ExperienceID:   resp.ExperienceID,
		AvailabilityID: resp.AvailabilityID,
		GuestCount:     resp.GuestCount,
		Price: PriceResponse{
			BaseTotal:  resp.BaseTotal,
			ServiceFee: resp.ServiceFee,
			Taxes:      resp.Taxes,
			TotalPrice: resp.TotalPrice,
		},
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		SpecialRequests: resp.SpecialRequests,
		Slot: SlotStateResponse{
			BookedSlots: resp.SlotBookedSlots,
			Status:      resp.SlotStatus,
		},
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
