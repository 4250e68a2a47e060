package create_slots_bulk

import (
	"context"

	"github.com/kar1timmins/DineLocal/internal/service/slots/models"
)

type SlotService interface {
	CreateBulk(ctx context.Context, req *models.CreateBulkSlotsRequest) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
