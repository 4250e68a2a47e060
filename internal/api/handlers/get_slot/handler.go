package get_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kar1timmins/DineLocal/internal/api/handlers"
	"github.com/kar1timmins/DineLocal/internal/service/slots"
)

const (
	msgInvalidSlotID = "некорректный ID слота"
	msgSlotNotFound  = "слот не найден"
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

// Handle GET /api/v1/availability/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.ParseUUID(mux.Vars(r)["slotId"])
	if err != nil {
		h.logger.Warn("GET /availability/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	slot, err := h.service.GetByID(r.Context(), slotID)
	if err != nil {
		if errors.Is(err, slots.ErrSlotNotFound) {
			h.logger.Warn("GET /availability/{id} - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)
			return
		}
		h.logger.Error("GET /availability/{id} - Failed to get slot: slot_id=%s, error=%v", slotID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability/{id} - Slot retrieved: slot_id=%s", slotID)
	handlers.RespondJSON(w, http.StatusOK, slot)
}
