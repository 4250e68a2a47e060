package create_booking

import (
	"errors"
	"net/http"

	"github.com/kar1timmins/DineLocal/internal/api/handlers"
	"github.com/kar1timmins/DineLocal/internal/api/middleware"
	createBooking "github.com/kar1timmins/DineLocal/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidInput         = "некорректные данные бронирования"
	msgUserNotFound         = "пользователь не найден"
	msgExperienceNotFound   = "впечатление не найдено"
	msgSlotNotFound         = "слот не найден"
	msgExperienceInactive   = "впечатление недоступно для бронирования"
	msgSlotMismatch         = "слот не относится к выбранному впечатлению"
	msgGuestCountOutOfRange = "количество гостей вне допустимого диапазона для впечатления"
	msgSlotNotAvailable     = "в выбранном слоте недостаточно мест"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: user_id=%s, %v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%s, slot_id=%s, guests=%d",
				userID, req.AvailabilityID, req.GuestCount)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrExperienceNotFound):
			h.logger.Warn("POST /bookings - Experience not found: experience_id=%s", req.ExperienceID)
			handlers.RespondNotFound(w, msgExperienceNotFound)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%s", req.AvailabilityID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrExperienceInactive):
			h.logger.Warn("POST /bookings - Experience inactive: experience_id=%s", req.ExperienceID)
			handlers.RespondBadRequest(w, msgExperienceInactive)

		case errors.Is(err, createBooking.ErrSlotExperienceMismatch):
			h.logger.Warn("POST /bookings - Slot mismatch: slot_id=%s, experience_id=%s", req.AvailabilityID, req.ExperienceID)
			handlers.RespondBadRequest(w, msgSlotMismatch)

		case errors.Is(err, createBooking.ErrGuestCountOutOfRange):
			h.logger.Warn("POST /bookings - Guest count out of range: experience_id=%s, guests=%d", req.ExperienceID, req.GuestCount)
			handlers.RespondBadRequest(w, msgGuestCountOutOfRange)

		case errors.Is(err, createBooking.ErrInvalidGuestCount), errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%s, %v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, slot_id=%s, error=%v",
				userID, req.AvailabilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, slot_id=%s, total=%.2f",
		result.ID, userID, result.AvailabilityID, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
