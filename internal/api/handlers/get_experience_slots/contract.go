package get_experience_slots

import (
	"context"
	"time"

	"github.com/kar1timmins/DineLocal/internal/service/slots/models"
)

type SlotService interface {
	ListByExperience(ctx context.Context, experienceID string, startDate, endDate *time.Time) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
