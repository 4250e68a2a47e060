package update_slot

import (
	"context"

	"github.com/kar1timmins/DineLocal/internal/service/slots/models"
)

type SlotService interface {
	Update(ctx context.Context, slotID string, req *models.UpdateSlotRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
