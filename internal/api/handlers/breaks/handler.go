package breaks

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	availabilityService "github.com/m04kA/SMC-CalendarService/internal/service/availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректное время, ожидается h:mm AM/PM"
	msgInvalidBreak       = "некорректный перерыв: нужны providerId, dayIso (YYYY-MM-DD) и start раньше end"
	msgBreakNotFound      = "перерыв не найден"
)

type Handler struct {
	service BreakService
	logger  Logger
}

func NewHandler(service BreakService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/breaks
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	all := h.service.Breaks()

	response := make([]BreakResponse, 0, len(all))
	for _, b := range all {
		response = append(response, FromDomain(b))
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}

// Create POST /api/v1/breaks
// Перерыв с теми же dayIso/start/end заменяется, а не дублируется.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	b, ok := h.decode(w, r, "POST /breaks")
	if !ok {
		return
	}

	created, err := h.service.AddBreak(b)
	if err != nil {
		h.respondServiceError(w, "POST /breaks", err)
		return
	}

	h.logger.Info("POST /breaks - Break saved: id=%s, day=%s", created.ID, created.DayISO)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(created))
}

// Update PUT /api/v1/breaks/{breakId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["breakId"]

	b, ok := h.decode(w, r, "PUT /breaks/{id}")
	if !ok {
		return
	}

	updated, err := h.service.UpdateBreak(id, b)
	if err != nil {
		h.respondServiceError(w, "PUT /breaks/{id}", err)
		return
	}

	h.logger.Info("PUT /breaks/{id} - Break updated: id=%s", updated.ID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(updated))
}

// Delete DELETE /api/v1/breaks/{breakId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["breakId"]

	if err := h.service.RemoveBreak(id); err != nil {
		h.respondServiceError(w, "DELETE /breaks/{id}", err)
		return
	}

	h.logger.Info("DELETE /breaks/{id} - Break removed: id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string) (domain.BreakBlock, bool) {
	var req BreakRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return domain.BreakBlock{}, false
	}

	b, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("%s - Invalid time: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return domain.BreakBlock{}, false
	}

	return b, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, availabilityService.ErrBreakNotFound):
		h.logger.Warn("%s - Break not found: %v", route, err)
		handlers.RespondNotFound(w, msgBreakNotFound)
	case errors.Is(err, availabilityService.ErrInvalidBreak), errors.Is(err, availabilityService.ErrInvalidWindow):
		h.logger.Warn("%s - Invalid break: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBreak)
	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
