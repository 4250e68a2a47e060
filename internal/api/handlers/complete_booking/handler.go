package complete_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kar1timmins/DineLocal/internal/api/handlers"
	"github.com/kar1timmins/DineLocal/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgInvalidStatus    = "завершить можно только подтвержденное бронирование"
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

// Handle PATCH /api/v1/bookings/{bookingId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.ParseUUID(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/complete - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.Complete(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/complete - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrCannotComplete):
			h.logger.Warn("PATCH /bookings/{id}/complete - Invalid status: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /bookings/{id}/complete - Failed to complete booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/complete - Booking completed: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
