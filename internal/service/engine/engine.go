// Package engine выполняет команды жизненного цикла и ведёт ограниченный журнал для отмены
//
// Команды одного бронирования выполняются строго по очереди (блокировка на бронирование),
// команды разных бронирований - параллельно. Журнал защищён отдельным мьютексом,
// который никогда не удерживается во время ожидания блокировки бронирования.
package engine

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-BookingLifecycle/internal/service/commands"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/lifecycle"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/reqctx"
)

const tracerName = "github.com/m04kA/SMC-BookingLifecycle/internal/service/engine"

// Engine движок команд
type Engine struct {
	env      commands.Env
	history  *History
	locks    *keyLock
	cfg      Config
	logger   Logger
	recorder Recorder
	tracer   trace.Tracer
}

// New создает движок; recorder может быть nil
func New(env commands.Env, cfg Config, logger Logger, recorder Recorder) *Engine {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if env.Logger == nil {
		env.Logger = logger
	}
	return &Engine{
		env:      env,
		history:  NewHistory(cfg.HistorySize),
		locks:    newKeyLock(),
		cfg:      cfg,
		logger:   logger,
		recorder: recorder,
		tracer:   otel.Tracer(tracerName),
	}
}

// Execute выполняет команду и при успехе добавляет её в журнал
// При любой ошибке журнал не меняется
func (e *Engine) Execute(ctx context.Context, cmd commands.Command) (*commands.Outcome, error) {
	ctx, span := e.tracer.Start(ctx, "engine.Execute", trace.WithAttributes(
		attribute.String("command.name", cmd.Name()),
		attribute.Int64("booking.id", cmd.BookingID()),
	))
	defer span.End()

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	// 1. Блокировка бронирования
	unlock, err := e.locks.Lock(ctx, cmd.BookingID())
	if err != nil {
		err = fmt.Errorf("%w: Execute %s - wait booking %d: %v", ErrTimeout, cmd.Name(), cmd.BookingID(), err)
		e.failExecute(ctx, span, cmd, err)
		return nil, err
	}
	// журнал пополняется под блокировкой бронирования, порядок в журнале совпадает с порядком записей
	defer unlock()

	// 2. Выполнение
	outcome, err := cmd.Execute(ctx, e.env)
	if err != nil {
		e.failExecute(ctx, span, cmd, err)
		return nil, err
	}

	// 3. Запись в журнал
	if evicted := e.history.Push(cmd); evicted != nil {
		e.logger.Info("Execute: history full, evicted %s booking=%d", evicted.Name(), evicted.BookingID())
	}
	e.recorder.ObserveCommand(cmd.Name(), resultSuccess)
	e.recorder.SetHistorySize(e.history.Len())

	span.SetAttributes(attribute.String("booking.status", outcome.To.Status.String()))
	e.logger.Info("Execute: %s booking=%d %s/%s -> %s/%s request_id=%s",
		cmd.Name(), cmd.BookingID(),
		outcome.From.Status, outcome.From.PaymentStatus,
		outcome.To.Status, outcome.To.PaymentStatus,
		reqctx.RequestID(ctx))

	return outcome, nil
}

// Undo отменяет последнюю команду журнала
// Неудачная отмена не возвращает команду в журнал
func (e *Engine) Undo(ctx context.Context, actor string) (*UndoResult, error) {
	ctx = reqctx.WithActor(ctx, actor)
	ctx, span := e.tracer.Start(ctx, "engine.Undo")
	defer span.End()

	// 1. Снимаем команду с вершины журнала
	cmd, err := e.history.PopUndoable()
	if err != nil {
		result := resultNothingToUndo
		if errors.Is(err, ErrNotUndoable) {
			result = resultNotUndoable
		}
		e.recorder.ObserveUndo("", result)
		span.SetStatus(codes.Error, result)
		e.logger.Warn("Undo: %v request_id=%s", err, reqctx.RequestID(ctx))
		return nil, err
	}
	e.recorder.SetHistorySize(e.history.Len())
	span.SetAttributes(
		attribute.String("command.name", cmd.Name()),
		attribute.Int64("booking.id", cmd.BookingID()),
	)

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	// 2. Отмена под блокировкой бронирования
	unlock, err := e.locks.Lock(ctx, cmd.BookingID())
	if err != nil {
		err = fmt.Errorf("%w: Undo %s - wait booking %d: %v", ErrTimeout, cmd.Name(), cmd.BookingID(), err)
		e.failUndo(ctx, span, cmd, err)
		return nil, err
	}
	defer unlock()

	outcome, err := cmd.Undo(ctx, e.env)
	if err != nil {
		e.failUndo(ctx, span, cmd, err)
		return nil, err
	}

	e.recorder.ObserveUndo(cmd.Name(), resultSuccess)
	e.logger.Info("Undo: %s booking=%d reverted to %s/%s actor=%q request_id=%s",
		cmd.Name(), cmd.BookingID(), outcome.To.Status, outcome.To.PaymentStatus, actor, reqctx.RequestID(ctx))

	return &UndoResult{
		Command:   cmd.Name(),
		BookingID: cmd.BookingID(),
		Outcome:   outcome,
	}, nil
}

// History описания команд журнала от старой к новой
func (e *Engine) History() []commands.Summary {
	return e.history.Summaries()
}

// HistorySize текущее количество команд в журнале
func (e *Engine) HistorySize() int {
	return e.history.Len()
}

// HistoryCapacity максимальный размер журнала
func (e *Engine) HistoryCapacity() int {
	return e.history.Max()
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.cfg.OperationTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.cfg.OperationTimeout)
}

func (e *Engine) failExecute(ctx context.Context, span trace.Span, cmd commands.Command, err error) {
	result := classify(ctx, err)
	e.recorder.ObserveCommand(cmd.Name(), result)
	span.SetStatus(codes.Error, result)

	switch result {
	case resultRejected, resultInvalid, resultNotFound:
		e.logger.Warn("Execute: %s booking=%d %s: %v request_id=%s",
			cmd.Name(), cmd.BookingID(), result, err, reqctx.RequestID(ctx))
	default:
		span.RecordError(err)
		e.logger.Error("Execute: %s booking=%d failed: %v request_id=%s",
			cmd.Name(), cmd.BookingID(), err, reqctx.RequestID(ctx))
	}
}

func (e *Engine) failUndo(ctx context.Context, span trace.Span, cmd commands.Command, err error) {
	result := classify(ctx, err)
	e.recorder.ObserveUndo(cmd.Name(), result)
	span.SetStatus(codes.Error, result)
	span.RecordError(err)

	e.logger.Error("Undo: %s booking=%d discarded: %v request_id=%s",
		cmd.Name(), cmd.BookingID(), err, reqctx.RequestID(ctx))
}

func classify(ctx context.Context, err error) string {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return resultTimeout
	}
	if _, ok := lifecycle.AsRejection(err); ok {
		return resultRejected
	}
	switch {
	case errors.Is(err, commands.ErrInvalidPayload):
		return resultInvalid
	case errors.Is(err, commands.ErrBookingNotFound):
		return resultNotFound
	case errors.Is(err, commands.ErrStaleState):
		return resultStale
	case errors.Is(err, commands.ErrConcurrentModification):
		return resultConflict
	case errors.Is(err, ErrTimeout):
		return resultTimeout
	default:
		return resultError
	}
}
