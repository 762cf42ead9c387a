package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/infra/storage"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/lifecycle"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/reqctx"
)

// maxReservationAttempts попыток подобрать уникальный номер бронирования
const maxReservationAttempts = 3

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	events       EventSink
	numbers      ReservationNumberGenerator
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	events EventSink,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		events:       events,
		numbers:      UUIDReservationNumbers{},
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute создаёт бронирование в состоянии pending/unpaid
// Дальнейшие изменения статуса выполняются только командами
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: requester=%d, provider=%d, service=%d, scheduledAt=%s",
		req.RequesterID, req.ProviderID, req.ServiceID, req.ScheduledAt.Format("2006-01-02T15:04Z07:00"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем время бронирования
	now := uc.timeProvider.Now()
	if err := validateSchedule(req.ScheduledAt, now); err != nil {
		uc.logger.Warn("CreateBooking: schedule validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем, подбирая уникальный номер бронирования
	var created *domain.Booking
	for attempt := 1; attempt <= maxReservationAttempts; attempt++ {
		booking := &domain.Booking{
			ReservationNumber: uc.numbers.Next(now),
			RequesterID:       req.RequesterID,
			ProviderID:        req.ProviderID,
			ServiceID:         req.ServiceID,
			ServiceName:       strings.TrimSpace(req.ServiceName),
			ScheduledAt:       req.ScheduledAt.UTC(),
			DurationMinutes:   req.DurationMinutes,
			TotalAmount:       req.TotalAmount,
			Currency:          req.Currency,
			Notes:             req.Notes,
			Status:            domain.StatusPending,
			PaymentStatus:     domain.PaymentUnpaid,
			CreatedAt:         now.UTC(),
			UpdatedAt:         now.UTC(),
		}

		result, err := uc.bookingRepo.Create(ctx, booking)
		if err == nil {
			created = result
			break
		}
		if errors.Is(err, storage.ErrDuplicateReservationNumber) {
			uc.logger.Warn("CreateBooking: reservation number %s taken, attempt %d/%d",
				booking.ReservationNumber, attempt, maxReservationAttempts)
			continue
		}
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	if created == nil {
		uc.logger.Error("CreateBooking: no unique reservation number after %d attempts", maxReservationAttempts)
		return nil, fmt.Errorf("%w: reservation number collisions", ErrInternal)
	}

	// 4. Событие о создании (best-effort)
	uc.emitCreated(ctx, created)

	uc.logger.Info("CreateBooking: successfully created booking id=%d number=%s", created.ID, created.ReservationNumber)

	return toResponse(created), nil
}

func (uc *UseCase) emitCreated(ctx context.Context, b *domain.Booking) {
	if uc.events == nil {
		return
	}

	err := uc.events.Emit(ctx, domain.LifecycleEvent{
		Name:              lifecycle.DomainBookingCreated,
		BookingID:         b.ID,
		ReservationNumber: b.ReservationNumber,
		Actor:             reqctx.Actor(ctx),
		RequestID:         reqctx.RequestID(ctx),
		OccurredAt:        b.CreatedAt,
		Data: map[string]interface{}{
			"requesterId":   b.RequesterID,
			"providerId":    b.ProviderID,
			"serviceId":     b.ServiceID,
			"scheduledAt":   b.ScheduledAt,
			"totalAmount":   b.TotalAmount,
			"currency":      b.Currency,
			"status":        b.Status.String(),
			"paymentStatus": b.PaymentStatus.String(),
		},
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to emit %s for booking=%d: %v", lifecycle.DomainBookingCreated, b.ID, err)
	}
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:                b.ID,
		ReservationNumber: b.ReservationNumber,
		RequesterID:       b.RequesterID,
		ProviderID:        b.ProviderID,
		ServiceID:         b.ServiceID,
		ServiceName:       b.ServiceName,
		ScheduledAt:       b.ScheduledAt,
		DurationMinutes:   b.DurationMinutes,
		TotalAmount:       b.TotalAmount,
		Currency:          b.Currency,
		Notes:             b.Notes,
		Status:            b.Status.String(),
		PaymentStatus:     b.PaymentStatus.String(),
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}
