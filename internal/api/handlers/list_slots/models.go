package list_slots

import (
	"net/url"

	"github.com/kar1timmins/DineLocal/internal/api/handlers"
	"github.com/kar1timmins/DineLocal/internal/service/slots/models"
)

const defaultLimit = 20

// parseQuery разбирает ?experienceId=&startDate=&endDate=&status=&page=&limit=
func parseQuery(q url.Values) (*models.ListSlotsRequest, error) {
	experienceID, err := handlers.OptionalUUID(q.Get("experienceId"))
	if err != nil {
		return nil, err
	}

	startDate, err := handlers.ParseOptionalDate(q.Get("startDate"))
	if err != nil {
		return nil, err
	}

	endDate, err := handlers.ParseOptionalDate(q.Get("endDate"))
	if err != nil {
		return nil, err
	}

	page, err := handlers.ParseOptionalInt(q.Get("page"), 1)
	if err != nil {
		return nil, err
	}

	limit, err := handlers.ParseOptionalInt(q.Get("limit"), defaultLimit)
	if err != nil {
		return nil, err
	}

	return &models.ListSlotsRequest{
		ExperienceID: experienceID,
		StartDate:    startDate,
		EndDate:      endDate,
		Status:       handlers.OptionalString(q.Get("status")),
		Page:         page,
		Limit:        limit,
	}, nil
}
