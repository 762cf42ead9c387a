package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/commands"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/lifecycle"
)

const (
	msgInvalidBookingID       = "некорректный ID бронирования"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidReason          = "некорректная причина отмены"
	msgNotFound               = "бронирование не найдено"
	msgCannotCancel           = "бронирование не может быть отменено"
	msgConcurrentModification = "бронирование изменено параллельно, повторите запрос"
)

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

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
// Сокращение для команды CancelBooking, команда попадает в журнал
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %q", mux.Vars(r)["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Error("PATCH /bookings/{id}/cancel - Failed to encode payload: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if rej, ok := lifecycle.AsRejection(err); ok {
			h.logger.Warn("PATCH /bookings/{id}/cancel - Cannot cancel: booking_id=%d, reason=%s", bookingID, rej.Reason)
			handlers.RespondErrorCode(w, http.StatusBadRequest, string(rej.Reason), msgCannotCancel)
			return
		}

		switch {
		case errors.Is(err, commands.ErrInvalidPayload):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid reason: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidReason)

		case errors.Is(err, commands.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, commands.ErrConcurrentModification):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Concurrent modification: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgConcurrentModification)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
