package update_slot

import (
	"github.com/kar1timmins/DineLocal/internal/api/handlers"
	"github.com/kar1timmins/DineLocal/internal/service/slots/models"
	"github.com/kar1timmins/DineLocal/pkg/types"
)

// UpdateSlotRequest HTTP request model, отсутствующие поля не изменяются
type UpdateSlotRequest struct {
	Date               *string  `json:"date,omitempty"`
	StartTime          *string  `json:"startTime,omitempty"`
	EndTime            *string  `json:"endTime,omitempty"`
	MaxSlots           *int     `json:"maxSlots,omitempty" validate:"omitempty,gt=0"`
	PriceOverride      *float64 `json:"priceOverride,omitempty" validate:"omitempty,gte=0"`
	ClearPriceOverride bool     `json:"clearPriceOverride,omitempty"`
	Status             *string  `json:"status,omitempty" validate:"omitempty,oneof=available blocked"`
	Notes              *string  `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSlotRequest) ToServiceRequest() (*models.UpdateSlotRequest, error) {
	req := &models.UpdateSlotRequest{
		MaxSlots:           r.MaxSlots,
		PriceOverride:      r.PriceOverride,
		ClearPriceOverride: r.ClearPriceOverride,
		Status:             r.Status,
		Notes:              r.Notes,
	}

	if r.Date != nil {
		date, err := handlers.ParseDate(*r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	if r.EndTime != nil {
		endTime, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &endTime
	}

	return req, nil
}
