package execute_command

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BookingLifecycle/internal/service/bookings/models"
)

// UseCase строит команду по имени и передаёт её движку
type UseCase struct {
	registry CommandRegistry
	engine   CommandEngine
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(registry CommandRegistry, engine CommandEngine, logger Logger) *UseCase {
	return &UseCase{
		registry: registry,
		engine:   engine,
		logger:   logger,
	}
}

// Execute выполняет именованную команду над бронированием
// Ошибки реестра, машины состояний и движка возвращаются без изменений для errors.Is
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация
	name := strings.TrimSpace(req.Command)
	if name == "" {
		return nil, fmt.Errorf("%w: command is required", ErrInvalidInput)
	}
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	// 2. Построение команды
	cmd, err := uc.registry.Build(name, req.BookingID, req.Payload)
	if err != nil {
		uc.logger.Warn("ExecuteCommand: cannot build %q for booking=%d: %v", name, req.BookingID, err)
		return nil, err
	}

	// 3. Выполнение
	outcome, err := uc.engine.Execute(ctx, cmd)
	if err != nil {
		return nil, err
	}

	return &Response{
		Command:           outcome.Command,
		BookingID:         outcome.BookingID,
		FromStatus:        outcome.From.Status.String(),
		FromPaymentStatus: outcome.From.PaymentStatus.String(),
		ToStatus:          outcome.To.Status.String(),
		ToPaymentStatus:   outcome.To.PaymentStatus.String(),
		Event:             outcome.Event,
		EventEmitted:      outcome.EventEmitted,
		CanUndo:           cmd.CanUndo(),
		HistorySize:       uc.engine.HistorySize(),
		Booking:           models.FromDomainBooking(outcome.Booking),
	}, nil
}
