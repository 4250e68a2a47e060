package get_booking_stats

import (
	"net/http"

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

// Handle GET /api/v1/bookings/stats?hostId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID, err := handlers.OptionalUUID(r.URL.Query().Get("hostId"))
	if err != nil {
		h.logger.Warn("GET /bookings/stats - Invalid host ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHostID)
		return
	}

	stats, err := h.service.GetStats(r.Context(), hostID)
	if err != nil {
		h.logger.Error("GET /bookings/stats - Failed to get stats: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/stats - Stats retrieved: total=%d, revenue=%.2f", stats.TotalBookings, stats.TotalRevenue)
	handlers.RespondJSON(w, http.StatusOK, stats)
}
