package confirm_booking

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
	msgInvalidStatus    = "подтвердить можно только бронирование в статусе pending"
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

// Handle PATCH /api/v1/bookings/{bookingId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.ParseUUID(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/confirm - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.Confirm(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrCannotConfirm):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Invalid status: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /bookings/{id}/confirm - Failed to confirm booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/confirm - Booking confirmed: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
