package reschedule_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	rescheduleAppointment "github.com/m04kA/SMC-CalendarService/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidInput         = "некорректные данные переноса"
	msgAppointmentNotFound  = "запись не найдена"
	msgGestureInFlight      = "запись уже переносится"
	msgMissingAppointmentID = "ID записи обязателен"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/reschedule
// Ответ с баннером приходит и при успехе, и при откате.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointmentId"]
	if appointmentID == "" {
		h.logger.Warn("POST /appointments/{id}/reschedule - Missing appointment ID")
		handlers.RespondBadRequest(w, msgMissingAppointmentID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID))
	if err != nil && result != nil {
		// откат: тело содержит причину и текст баннера
		status := rejectionStatus(err)
		h.logger.Warn("POST /appointments/{id}/reschedule - Rolled back: appointment_id=%s, result=%s, reason=%s",
			appointmentID, result.Result, result.Reason)
		handlers.RespondJSON(w, status, FromUseCaseResponse(result))
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, rescheduleAppointment.ErrGestureInFlight):
			h.logger.Warn("POST /appointments/{id}/reschedule - Gesture in flight: appointment_id=%s", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgGestureInFlight)

		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/reschedule - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments/{id}/reschedule - Failed to reschedule: appointment_id=%s, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/reschedule - Appointment moved: appointment_id=%s, date=%s, time=%s",
		appointmentID, result.Date, result.Time)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// rejectionStatus HTTP статус для отката переноса
func rejectionStatus(err error) int {
	switch {
	case errors.Is(err, rescheduleAppointment.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, rescheduleAppointment.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, rescheduleAppointment.ErrUnknown):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
