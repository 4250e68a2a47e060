package create_slot

import (
	"errors"
	"net/http"

	"github.com/kar1timmins/DineLocal/internal/api/handlers"
	"github.com/kar1timmins/DineLocal/internal/service/slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgExperienceNotFound = "впечатление не найдено"
	msgSlotAlreadyExists  = "слот на эту дату и время уже существует"
	msgInvalidTimeRange   = "время начала должно быть раньше времени окончания"
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

// Handle POST /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(req); err != nil {
		h.logger.Warn("POST /availability - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /availability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	slot, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrExperienceNotFound):
			h.logger.Warn("POST /availability - Experience not found: experience_id=%s", req.ExperienceID)
			handlers.RespondNotFound(w, msgExperienceNotFound)

		case errors.Is(err, slots.ErrSlotAlreadyExists):
			h.logger.Warn("POST /availability - Slot already exists: experience_id=%s, date=%s, start=%s",
				req.ExperienceID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotAlreadyExists)

		case errors.Is(err, slots.ErrInvalidTimeRange):
			h.logger.Warn("POST /availability - Invalid time range: %s-%s", req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, slots.ErrInvalidInput), errors.Is(err, slots.ErrInvalidCapacity):
			h.logger.Warn("POST /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /availability - Failed to create slot: experience_id=%s, error=%v", req.ExperienceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Slot created: slot_id=%s, experience_id=%s", slot.ID, slot.ExperienceID)
	handlers.RespondJSON(w, http.StatusCreated, slot)
}
