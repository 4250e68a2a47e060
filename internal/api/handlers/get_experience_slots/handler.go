package get_experience_slots

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kar1timmins/DineLocal/internal/api/handlers"
)

const (
	msgInvalidExperienceID = "некорректный ID впечатления"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/availability/experience/{experienceId}?startDate=&endDate=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	experienceID, err := handlers.ParseUUID(mux.Vars(r)["experienceId"])
	if err != nil {
		h.logger.Warn("GET /availability/experience/{id} - Invalid experience ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExperienceID)
		return
	}

	q := r.URL.Query()
	startDate, err := handlers.ParseOptionalDate(q.Get("startDate"))
	if err != nil {
		h.logger.Warn("GET /availability/experience/{id} - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	endDate, err := handlers.ParseOptionalDate(q.Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /availability/experience/{id} - Invalid endDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ListByExperience(r.Context(), experienceID, startDate, endDate)
	if err != nil {
		h.logger.Error("GET /availability/experience/{id} - Failed to get slots: experience_id=%s, error=%v", experienceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability/experience/{id} - Found %d slots for experience_id=%s", len(result.Slots), experienceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
