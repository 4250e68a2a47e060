package list_slots

import (
	"errors"
	"net/http"

	"github.com/kar1timmins/DineLocal/internal/api/handlers"
	"github.com/kar1timmins/DineLocal/internal/service/slots"
)

const (
	msgInvalidQuery  = "некорректные параметры запроса"
	msgInvalidStatus = "некорректный статус слота"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, slots.ErrInvalidInput) {
			h.logger.Warn("GET /availability - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /availability - Failed to list slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability - Found %d of %d slots, page=%d", len(result.Slots), result.Total, result.Page)
	handlers.RespondJSON(w, http.StatusOK, result)
}
