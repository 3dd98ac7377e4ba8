package availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	availabilityService "github.com/m04kA/SMC-CalendarService/internal/service/availability"
)

const (
	msgInvalidWeekday     = "некорректный день недели, ожидается 0 (воскресенье) - 6 (суббота)"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректное время, ожидается h:mm AM/PM"
	msgInvalidWindow      = "начало должно быть раньше конца"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
	now     func() time.Time
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// List GET /api/v1/availability
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	days := h.service.Days()

	response := make([]DayResponse, 0, len(days))
	for _, d := range days {
		response = append(response, FromDomainDay(d))
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}

// UpdateDay PUT /api/v1/availability/{weekday}
func (h *Handler) UpdateDay(w http.ResponseWriter, r *http.Request) {
	weekday, err := strconv.Atoi(mux.Vars(r)["weekday"])
	if err != nil || weekday < 0 || weekday > 6 {
		h.logger.Warn("PUT /availability/{weekday} - Invalid weekday: %q", mux.Vars(r)["weekday"])
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}
	day := time.Weekday(weekday)

	var req UpdateDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability/{weekday} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	start, end, enabled, err := req.Apply(h.service.Day(day))
	if err != nil {
		h.logger.Warn("PUT /availability/{weekday} - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	updated, err := h.service.SetDay(day, start, end, enabled)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrInvalidWindow):
			h.logger.Warn("PUT /availability/{weekday} - Invalid window: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWindow)
		case errors.Is(err, availabilityService.ErrInvalidWeekday):
			handlers.RespondBadRequest(w, msgInvalidWeekday)
		default:
			h.logger.Error("PUT /availability/{weekday} - Failed to update day: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /availability/{weekday} - Day updated: %s enabled=%t %d-%d",
		updated.Day, updated.Enabled, updated.Start, updated.End)
	handlers.RespondJSON(w, http.StatusOK, FromDomainDay(updated))
}

// QuickEdit POST /api/v1/availability/quick-edit
// Переключает сегодняшний день и добавляет обеденный перерыв для всех.
func (h *Handler) QuickEdit(w http.ResponseWriter, r *http.Request) {
	day, brk, err := h.service.QuickEdit(h.now())
	if err != nil {
		h.logger.Error("POST /availability/quick-edit - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /availability/quick-edit - %s enabled=%t, break id=%s", day.Day, day.Enabled, brk.ID)
	handlers.RespondJSON(w, http.StatusOK, QuickEditResponse{
		Day:   FromDomainDay(day),
		Break: FromDomainBreak(brk),
	})
}
