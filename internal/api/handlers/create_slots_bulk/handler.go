package create_slots_bulk

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
	msgInvalidDateRange   = "некорректный диапазон дат"
	msgInvalidTimeRange   = "время начала должно быть раньше времени окончания"
	msgNoNewSlots         = "нет новых слотов для создания"
	msgInvalidInput       = "некорректные данные слотов"
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

// Handle POST /api/v1/availability/bulk
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBulkSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(req); err != nil {
		h.logger.Warn("POST /availability/bulk - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /availability/bulk - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.service.CreateBulk(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrExperienceNotFound):
			h.logger.Warn("POST /availability/bulk - Experience not found: experience_id=%s", req.ExperienceID)
			handlers.RespondNotFound(w, msgExperienceNotFound)

		case errors.Is(err, slots.ErrInvalidDateRange):
			h.logger.Warn("POST /availability/bulk - Invalid date range: %s..%s", req.StartDate, req.EndDate)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, slots.ErrInvalidTimeRange):
			h.logger.Warn("POST /availability/bulk - Invalid time range: %s-%s", req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, slots.ErrNoNewSlots):
			h.logger.Warn("POST /availability/bulk - No new slots: experience_id=%s, range=%s..%s",
				req.ExperienceID, req.StartDate, req.EndDate)
			handlers.RespondBadRequest(w, msgNoNewSlots)

		case errors.Is(err, slots.ErrInvalidInput), errors.Is(err, slots.ErrInvalidCapacity):
			h.logger.Warn("POST /availability/bulk - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /availability/bulk - Failed to create slots: experience_id=%s, error=%v", req.ExperienceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/bulk - Slots created: experience_id=%s, count=%d", req.ExperienceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusCreated, BulkSlotsResponse{
		Created: len(result.Slots),
		Slots:   result.Slots,
	})
}
