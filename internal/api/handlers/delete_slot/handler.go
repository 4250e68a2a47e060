package delete_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kar1timmins/DineLocal/internal/api/handlers"
	"github.com/kar1timmins/DineLocal/internal/service/slots"
)

const (
	msgInvalidSlotID   = "некорректный ID слота"
	msgSlotNotFound    = "слот не найден"
	msgSlotHasBookings = "нельзя удалить слот с существующими бронированиями"
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

// Handle DELETE /api/v1/availability/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.ParseUUID(mux.Vars(r)["slotId"])
	if err != nil {
		h.logger.Warn("DELETE /availability/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.Remove(r.Context(), slotID); err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("DELETE /availability/{id} - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)
		case errors.Is(err, slots.ErrSlotHasBookings):
			h.logger.Warn("DELETE /availability/{id} - Slot has bookings: slot_id=%s", slotID)
			handlers.RespondBadRequest(w, msgSlotHasBookings)
		default:
			h.logger.Error("DELETE /availability/{id} - Failed to delete slot: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/{id} - Slot deleted: slot_id=%s", slotID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
