package create_slot

import (
	"github.com/kar1timmins/DineLocal/internal/api/handlers"
	"github.com/kar1timmins/DineLocal/internal/service/slots/models"
	"github.com/kar1timmins/DineLocal/pkg/types"
)

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	ExperienceID  string   `json:"experienceId" validate:"required,uuid"`
	Date          string   `json:"date" validate:"required"`      // "2026-05-14"
	StartTime     string   `json:"startTime" validate:"required"` // "18:00"
	EndTime       string   `json:"endTime" validate:"required"`
	MaxSlots      int      `json:"maxSlots" validate:"required,gt=0"`
	PriceOverride *float64 `json:"priceOverride,omitempty" validate:"omitempty,gte=0"`
	Notes         *string  `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateSlotRequest) ToServiceRequest() (*models.CreateSlotRequest, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &models.CreateSlotRequest{
		ExperienceID:  r.ExperienceID,
		Date:          date,
		StartTime:     startTime,
		EndTime:       endTime,
		MaxSlots:      r.MaxSlots,
		PriceOverride: r.PriceOverride,
		Notes:         r.Notes,
	}, nil
}
