package models

import (
	"errors"
	"strings"
	"time"

	"github.com/kar1timmins/DineLocal/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе бронирования
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidPaymentStatus возвращается при некорректном статусе оплаты
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// Request модели

// UpdateBookingRequest частичное обновление бронирования, nil-поля не изменяются
type UpdateBookingRequest struct {
	GuestCount         *int
	Status             *string
	PaymentStatus      *string
	SpecialRequests    *string
	CancellationReason *string // Используется при переходе в cancelled
}

// ListBookingsRequest фильтр списка бронирований
type ListBookingsRequest struct {
	Status        *string
	PaymentStatus *string
	UserID        *string
	ExperienceID  *string
	HostID        *string
	StartDate     *time.Time
	EndDate       *time.Time
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingFilter, error) {
	filter := domain.BookingFilter{
		UserID:       r.UserID,
		ExperienceID: r.ExperienceID,
		HostID:       r.HostID,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.PaymentStatus != nil {
		paymentStatus, err := ToDomainPaymentStatus(*r.PaymentStatus)
		if err != nil {
			return filter, err
		}
		filter.PaymentStatus = &paymentStatus
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"userId"`
	ExperienceID    string  `json:"experienceId"`
	AvailabilityID  string  `json:"availabilityId"`
	GuestCount      int     `json:"guestCount"`
	TotalPrice      float64 `json:"totalPrice"`
	ServiceFee      float64 `json:"serviceFee"`
	Taxes           float64 `json:"taxes"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"paymentStatus"`
	SpecialRequests *string `json:"specialRequests,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	ConfirmedAt        *string `json:"confirmedAt,omitempty"` // RFC3339
	CancelledAt        *string `json:"cancelledAt,omitempty"` // RFC3339

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// BookingStatsResponse агрегированная статистика бронирований
type BookingStatsResponse struct {
	TotalBookings int64            `json:"totalBookings"`
	StatusCounts  map[string]int64 `json:"statusCounts"`
	TotalRevenue  float64          `json:"totalRevenue"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		ExperienceID:       b.ExperienceID,
		AvailabilityID:     b.AvailabilityID,
		GuestCount:         b.GuestCount,
		TotalPrice:         b.TotalPrice,
		ServiceFee:         b.ServiceFee,
		Taxes:              b.Taxes,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		SpecialRequests:    b.SpecialRequests,
		CancellationReason: b.CancellationReason,
		ConfirmedAt:        formatTime(b.ConfirmedAt),
		CancelledAt:        formatTime(b.CancelledAt),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}
	return resp
}

// FromDomainStats конвертирует статистику в DTO
func FromDomainStats(stats *domain.BookingStats) *BookingStatsResponse {
	resp := &BookingStatsResponse{
		TotalBookings: stats.TotalBookings,
		StatusCounts:  make(map[string]int64, len(domain.AllBookingStatuses)),
		TotalRevenue:  stats.TotalRevenue,
	}
	for _, status := range domain.AllBookingStatuses {
		resp.StatusCounts[string(status)] = stats.StatusCounts[status]
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(strings.ToLower(status))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainPaymentStatus конвертирует строку в domain.PaymentStatus с валидацией
func ToDomainPaymentStatus(status string) (domain.PaymentStatus, error) {
	s := domain.PaymentStatus(strings.ToLower(status))
	if !s.IsValid() {
		return "", ErrInvalidPaymentStatus
	}
	return s, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
