package execute_command

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/commands"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/lifecycle"
	executeCommand "github.com/m04kA/SMC-BookingLifecycle/internal/usecase/execute_command"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/reqctx"
)

const (
	codeUnknownCommand         = "UNKNOWN_COMMAND"
	codeInvalidPayload         = "INVALID_PAYLOAD"
	codeBookingNotFound        = "BOOKING_NOT_FOUND"
	codeConcurrentModification = "CONCURRENT_MODIFICATION"
)

const (
	msgInvalidBookingID       = "некорректный ID бронирования"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgUnknownCommand         = "неизвестная команда"
	msgInvalidPayload         = "некорректные параметры команды"
	msgNotFound               = "бронирование не найдено"
	msgTerminalState          = "бронирование завершено или отменено, изменение невозможно"
	msgUnknownEvent           = "неизвестное событие жизненного цикла"
	msgPaymentPrecondition    = "статус оплаты не допускает этот переход"
	msgInvalidTransition      = "переход недопустим из текущего статуса"
	msgConcurrentModification = "бронирование изменено параллельно, повторите запрос"
)

var rejectionMessages = map[lifecycle.Reason]string{
	lifecycle.ReasonInvalidFromTerminalState: msgTerminalState,
	lifecycle.ReasonUnknownEvent:             msgUnknownEvent,
	lifecycle.ReasonPaymentPrecondition:      msgPaymentPrecondition,
	lifecycle.ReasonInvalidTransition:        msgInvalidTransition,
}

type Handler struct {
	useCase ExecuteCommandUseCase
	logger  Logger
}

func NewHandler(useCase ExecuteCommandUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/commands
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID := reqctx.RequestID(r.Context())

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("POST /bookings/{id}/commands - Invalid booking ID: %q", mux.Vars(r)["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ExecuteCommandRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/commands - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		if rej, ok := lifecycle.AsRejection(err); ok {
			h.logger.Warn("POST /bookings/{id}/commands - Rejected: booking_id=%d, command=%s, reason=%s",
				bookingID, req.Command, rej.Reason)
			handlers.RespondErrorCode(w, http.StatusBadRequest, string(rej.Reason), rejectionMessages[rej.Reason])
			return
		}

		switch {
		case errors.Is(err, commands.ErrUnknownCommand):
			h.logger.Warn("POST /bookings/{id}/commands - Unknown command: %q", req.Command)
			handlers.RespondErrorCode(w, http.StatusBadRequest, codeUnknownCommand, msgUnknownCommand)

		case errors.Is(err, commands.ErrInvalidPayload), errors.Is(err, executeCommand.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/commands - Invalid payload: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondErrorCode(w, http.StatusBadRequest, codeInvalidPayload, msgInvalidPayload)

		case errors.Is(err, commands.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/commands - Booking not found: booking_id=%d", bookingID)
			handlers.RespondErrorCode(w, http.StatusNotFound, codeBookingNotFound, msgNotFound)

		case errors.Is(err, commands.ErrConcurrentModification):
			h.logger.Warn("POST /bookings/{id}/commands - Concurrent modification: booking_id=%d", bookingID)
			handlers.RespondErrorCode(w, http.StatusConflict, codeConcurrentModification, msgConcurrentModification)

		default:
			h.logger.Error("POST /bookings/{id}/commands - Failed to execute: booking_id=%d, command=%s, request_id=%s, error=%v",
				bookingID, req.Command, requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/commands - Command executed: booking_id=%d, command=%s, status=%s/%s",
		bookingID, result.Command, result.ToStatus, result.ToPaymentStatus)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
