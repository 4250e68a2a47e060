package create_slots_bulk

import (
	"github.com/kar1timmins/DineLocal/internal/api/handlers"
	"github.com/kar1timmins/DineLocal/internal/service/slots/models"
	"github.com/kar1timmins/DineLocal/pkg/types"
)

// CreateBulkSlotsRequest HTTP request model
type CreateBulkSlotsRequest struct {
	ExperienceID  string   `json:"experienceId" validate:"required,uuid"`
	StartDate     string   `json:"startDate" validate:"required"`
	EndDate       string   `json:"endDate" validate:"required"`
	StartTime     string   `json:"startTime" validate:"required"`
	EndTime       string   `json:"endTime" validate:"required"`
	MaxSlots      int      `json:"maxSlots" validate:"required,gt=0"`
	PriceOverride *float64 `json:"priceOverride,omitempty" validate:"omitempty,gte=0"`
	ExcludeDays   []string `json:"excludeDays,omitempty"` // ["monday", "sunday"]
}

// BulkSlotsResponse HTTP response model
type BulkSlotsResponse struct {
	Created int                   `json:"created"`
	Slots   []models.SlotResponse `json:"slots"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBulkSlotsRequest) ToServiceRequest() (*models.CreateBulkSlotsRequest, error) {
	startDate, err := handlers.ParseDate(r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := handlers.ParseDate(r.EndDate)
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

	return &models.CreateBulkSlotsRequest{
		ExperienceID:  r.ExperienceID,
		StartDate:     startDate,
		EndDate:       endDate,
		StartTime:     startTime,
		EndTime:       endTime,
		MaxSlots:      r.MaxSlots,
		PriceOverride: r.PriceOverride,
		ExcludeDays:   r.ExcludeDays,
	}, nil
}
