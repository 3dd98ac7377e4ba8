package get_calendar

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	getCalendarView "github.com/m04kA/SMC-CalendarService/internal/usecase/get_calendar_view"
)

const (
	msgInvalidQuery     = "некорректные параметры: date ожидается YYYY-MM-DD, mode - day, week или month"
	msgProviderNotFound = "мастер не найден"
)

type Handler struct {
	useCase GetCalendarViewUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarViewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar
// Query params: date (YYYY-MM-DD, по умолчанию сегодня), mode (day|week|month, по умолчанию week), providerId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req, err := ToUseCaseRequest(q.Get("date"), q.Get("mode"), q.Get("providerId"), time.Local)
	if err != nil {
		h.logger.Warn("GET /calendar - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getCalendarView.ErrInvalidInput):
			h.logger.Warn("GET /calendar - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, getCalendarView.ErrProviderNotFound):
			h.logger.Warn("GET /calendar - Provider not found: provider_id=%s", req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		default:
			h.logger.Error("GET /calendar - Failed to build calendar view: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendar - Calendar view built: mode=%s, days=%d, appointments=%d",
		result.Mode, len(result.Days), len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
