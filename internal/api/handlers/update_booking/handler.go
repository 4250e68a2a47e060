package update_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kar1timmins/DineLocal/internal/api/handlers"
	"github.com/kar1timmins/DineLocal/internal/domain"
	"github.com/kar1timmins/DineLocal/internal/service/bookings"
)

const (
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidInput         = "некорректные данные бронирования"
	msgNotFound             = "бронирование не найдено"
	msgExperienceNotFound   = "впечатление не найдено"
	msgInvalidTransition    = "недопустимая смена статуса бронирования"
	msgBookingNotActive     = "бронирование уже отменено или завершено"
	msgGuestCountOutOfRange = "количество гостей вне допустимого диапазона для впечатления"
	msgCapacityExceeded     = "в слоте недостаточно мест"
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

// Handle PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.ParseUUID(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	booking, err := h.service.Update(r.Context(), bookingID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrExperienceNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Experience not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgExperienceNotFound)

		case errors.Is(err, bookings.ErrCapacityExceeded):
			h.logger.Warn("PATCH /bookings/{id} - Not enough capacity: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgCapacityExceeded)

		case errors.Is(err, bookings.ErrBookingNotActive), errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("PATCH /bookings/{id} - Booking not active: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgBookingNotActive)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id} - Invalid transition: booking_id=%s, %v", bookingID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, bookings.ErrGuestCountOutOfRange):
			h.logger.Warn("PATCH /bookings/{id} - Guest count out of range: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgGuestCountOutOfRange)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("PATCH /bookings/{id} - Invalid input: booking_id=%s, %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to update booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking updated successfully: booking_id=%s, status=%s", bookingID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
