package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kar1timmins/DineLocal/internal/api/handlers"
	"github.com/kar1timmins/DineLocal/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgCannotCancel       = "бронирование уже отменено или завершено"
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

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.ParseUUID(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.Cancel(r.Context(), bookingID, req.Reason)
	if !h.handleError(w, "PATCH /bookings/{id}/cancel", bookingID, err) {
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

// HandleDelete DELETE /api/v1/bookings/{bookingId}
// Бронирование не удаляется, а отменяется с причиной "Deleted by user".
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.ParseUUID(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.Remove(r.Context(), bookingID)
	if !h.handleError(w, "DELETE /bookings/{id}", bookingID, err) {
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking cancelled by user: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

// handleError пишет ответ для ошибки сервиса. Возвращает true, если ошибки не было.
func (h *Handler) handleError(w http.ResponseWriter, route, bookingID string, err error) bool {
	if err == nil {
		return true
	}

	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("%s - Booking not found: booking_id=%s", route, bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, bookings.ErrCannotCancel):
		h.logger.Warn("%s - Cannot cancel booking: booking_id=%s", route, bookingID)
		handlers.RespondConflict(w, msgCannotCancel)

	default:
		h.logger.Error("%s - Failed to cancel booking: booking_id=%s, error=%v", route, bookingID, err)
		handlers.RespondInternalError(w)
	}
	return false
}

