package get_bookings

import (
	"errors"
	"net/http"

	"github.com/kar1timmins/DineLocal/internal/api/handlers"
	"github.com/kar1timmins/DineLocal/internal/service/bookings"
)

const (
	msgInvalidQuery  = "некорректные параметры запроса"
	msgInvalidFilter = "некорректный статус в фильтре"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /bookings - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
