package get_booking_stats

import (
	"context"

	"github.com/kar1timmins/DineLocal/internal/service/bookings/models"
)

type BookingService interface {
	GetStats(ctx context.Context, hostID *string) (*models.BookingStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
