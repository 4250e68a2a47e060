package update_booking

import (
	"github.com/kar1timmins/DineLocal/internal/service/bookings/models"
)

// UpdateBookingRequest HTTP request model, отсутствующие поля не изменяются
type UpdateBookingRequest struct {
	GuestCount         *int    `json:"guestCount,omitempty" validate:"omitempty,gt=0"`
	Status             *string `json:"status,omitempty"`
	PaymentStatus      *string `json:"paymentStatus,omitempty"`
	SpecialRequests    *string `json:"specialRequests,omitempty" validate:"omitempty,max=1000"`
	CancellationReason *string `json:"cancellationReason,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateBookingRequest) ToServiceRequest() *models.UpdateBookingRequest {
	return &models.UpdateBookingRequest{
		GuestCount:         r.GuestCount,
		Status:             r.Status,
		PaymentStatus:      r.PaymentStatus,
		SpecialRequests:    r.SpecialRequests,
		CancellationReason: r.CancellationReason,
	}
}
