package check_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kar1timmins/DineLocal/internal/api/handlers"
	"github.com/kar1timmins/DineLocal/internal/service/slots"
	"github.com/kar1timmins/DineLocal/internal/service/slots/models"
)

const (
	msgInvalidSlotID     = "некорректный ID слота"
	msgInvalidGuestCount = "количество гостей должно быть положительным числом"
	msgSlotNotFound      = "слот не найден"
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

// Handle GET /api/v1/availability/{slotId}/check/{guestCount}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	slotID, err := handlers.ParseUUID(vars["slotId"])
	if err != nil {
		h.logger.Warn("GET /availability/{id}/check - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	guestCount, err := strconv.Atoi(vars["guestCount"])
	if err != nil || guestCount <= 0 {
		h.logger.Warn("GET /availability/{id}/check - Invalid guest count: %s", vars["guestCount"])
		handlers.RespondBadRequest(w, msgInvalidGuestCount)
		return
	}

	available, err := h.service.Check(r.Context(), slotID, guestCount)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("GET /availability/{id}/check - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)
		case errors.Is(err, slots.ErrInvalidGuestCount):
			handlers.RespondBadRequest(w, msgInvalidGuestCount)
		default:
			h.logger.Error("GET /availability/{id}/check - Failed to check slot: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/{id}/check - slot_id=%s, guests=%d, available=%t", slotID, guestCount, available)
	handlers.RespondJSON(w, http.StatusOK, models.CheckResponse{
		SlotID:     slotID,
		GuestCount: guestCount,
		Available:  available,
	})
}
