package update_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kar1timmins/DineLocal/internal/api/handlers"
	"github.com/kar1timmins/DineLocal/internal/service/slots"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgSlotNotFound       = "слот не найден"
	msgSlotAlreadyExists  = "слот на эту дату и время уже существует"
	msgInvalidTimeRange   = "время начала должно быть раньше времени окончания"
	msgInvalidCapacity    = "вместимость не может быть меньше уже забронированных мест"
	msgInvalidStatus      = "статус слота можно установить только в available или blocked"
	msgInvalidInput       = "некорректные данные слота"
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

// Handle PATCH /api/v1/availability/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.ParseUUID(mux.Vars(r)["slotId"])
	if err != nil {
		h.logger.Warn("PATCH /availability/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /availability/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(req); err != nil {
		h.logger.Warn("PATCH /availability/{id} - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PATCH /availability/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	slot, err := h.service.Update(r.Context(), slotID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PATCH /availability/{id} - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slots.ErrSlotAlreadyExists):
			h.logger.Warn("PATCH /availability/{id} - Slot key collision: slot_id=%s", slotID)
			handlers.RespondConflict(w, msgSlotAlreadyExists)

		case errors.Is(err, slots.ErrInvalidTimeRange):
			h.logger.Warn("PATCH /availability/{id} - Invalid time range: slot_id=%s", slotID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, slots.ErrInvalidCapacity):
			h.logger.Warn("PATCH /availability/{id} - Invalid capacity: slot_id=%s", slotID)
			handlers.RespondBadRequest(w, msgInvalidCapacity)

		case errors.Is(err, slots.ErrInvalidStatus):
			h.logger.Warn("PATCH /availability/{id} - Invalid status: slot_id=%s", slotID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("PATCH /availability/{id} - Invalid input: slot_id=%s, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /availability/{id} - Failed to update slot: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /availability/{id} - Slot updated: slot_id=%s, status=%s", slotID, slot.Status)
	handlers.RespondJSON(w, http.StatusOK, slot)
}
