package get_bookings

import (
	"net/url"

	"github.com/kar1timmins/DineLocal/internal/api/handlers"
	"github.com/kar1timmins/DineLocal/internal/service/bookings/models"
)

// parseQuery разбирает ?status=&paymentStatus=&userId=&experienceId=&hostId=&startDate=&endDate=
func parseQuery(q url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		Status:        handlers.OptionalString(q.Get("status")),
		PaymentStatus: handlers.OptionalString(q.Get("paymentStatus")),
	}

	var err error
	if req.UserID, err = handlers.OptionalUUID(q.Get("userId")); err != nil {
		return nil, err
	}
	if req.ExperienceID, err = handlers.OptionalUUID(q.Get("experienceId")); err != nil {
		return nil, err
	}
	if req.HostID, err = handlers.OptionalUUID(q.Get("hostId")); err != nil {
		return nil, err
	}
	if req.StartDate, err = handlers.ParseOptionalDate(q.Get("startDate")); err != nil {
		return nil, err
	}
	if req.EndDate, err = handlers.ParseOptionalDate(q.Get("endDate")); err != nil {
		return nil, err
	}

	return req, nil
}
