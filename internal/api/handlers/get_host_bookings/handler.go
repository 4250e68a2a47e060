package get_host_bookings

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kar1timmins/DineLocal/internal/api/handlers"
)

const (
	msgInvalidHostID = "некорректный ID хоста"
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

// Handle GET /api/v1/bookings/host/{hostId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID, err := handlers.ParseUUID(mux.Vars(r)["hostId"])
	if err != nil {
		h.logger.Warn("GET /bookings/host/{hostId} - Invalid host ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHostID)
		return
	}

	result, err := h.service.ListByHost(r.Context(), hostID)
	if err != nil {
		h.logger.Error("GET /bookings/host/{hostId} - Failed to get bookings: host_id=%s, error=%v", hostID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/host/{hostId} - Bookings retrieved successfully: host_id=%s, count=%d",
		hostID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
