package cancel_booking

import (
	"context"

	"github.com/kar1timmins/DineLocal/internal/service/bookings/models"
)

type BookingService interface {
	Cancel(ctx context.Context, bookingID string, reason *string) (*models.BookingResponse, error)
	Remove(ctx context.Context, bookingID string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
