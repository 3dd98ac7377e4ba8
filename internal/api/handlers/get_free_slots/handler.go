package get_free_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	getFreeSlots "github.com/m04kA/SMC-CalendarService/internal/usecase/get_free_slots"
)

const (
	msgInvalidQuery     = "некорректные параметры: date ожидается YYYY-MM-DD, duration - число минут"
	msgProviderNotFound = "мастер не найден"
)

type Handler struct {
	useCase GetFreeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetFreeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/free-slots
// Query params: date (YYYY-MM-DD), duration (минуты)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]
	q := r.URL.Query()

	req, err := ToUseCaseRequest(providerID, q.Get("date"), q.Get("duration"), time.Local)
	if err != nil {
		h.logger.Warn("GET /providers/%s/free-slots - Invalid query: %v", providerID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getFreeSlots.ErrInvalidInput):
			h.logger.Warn("GET /providers/%s/free-slots - Invalid input: %v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, getFreeSlots.ErrProviderNotFound):
			h.logger.Warn("GET /providers/%s/free-slots - Provider not found", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		default:
			h.logger.Error("GET /providers/%s/free-slots - Failed to find free slots: %v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/%s/free-slots - Found %d slots on %s", providerID, len(result.Slots), result.DayISO)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
