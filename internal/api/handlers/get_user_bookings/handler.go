package get_user_bookings

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kar1timmins/DineLocal/internal/api/handlers"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
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

// Handle GET /api/v1/bookings/user/{userId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.ParseUUID(mux.Vars(r)["userId"])
	if err != nil {
		h.logger.Warn("GET /bookings/user/{userId} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	result, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /bookings/user/{userId} - Failed to get bookings: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/user/{userId} - Bookings retrieved successfully: user_id=%s, count=%d",
		userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
