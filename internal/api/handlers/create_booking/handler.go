package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-BookingLifecycle/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidScheduledAt = "некорректный формат времени бронирования, ожидается RFC 3339"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidBookingDate = "время бронирования уже прошло"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse scheduledAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduledAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: requester_id=%d, error=%v", req.RequesterID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Booking in the past: requester_id=%d", req.RequesterID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: requester_id=%d", req.RequesterID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: requester_id=%d, provider_id=%d, error=%v",
				req.RequesterID, req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, number=%s, requester_id=%d",
		result.ID, result.ReservationNumber, req.RequesterID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
