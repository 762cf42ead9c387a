// Package commands - именованные обратимые команды жизненного цикла бронирования
//
// Команда выполняется не более одного раза: читает бронирование, проверяет переход
// машиной состояний, сохраняет снимок изменяемых полей до записи, делает ровно одну
// запись и отправляет одно доменное событие. Отмена восстанавливает снимок как есть.
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/infra/storage"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/lifecycle"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/reqctx"
)

// Command обратимая операция над одним бронированием
type Command interface {
	Name() string
	BookingID() int64
	Payload() Payload
	Execute(ctx context.Context, env Env) (*Outcome, error)
	Undo(ctx context.Context, env Env) (*Outcome, error)
	CanUndo() bool
	Summary() Summary
}

// mutateFunc изменяет поля бронирования, сопутствующие переходу
type mutateFunc func(b *domain.Booking, now time.Time)

// transition общая реализация команды поверх одного события машины состояний
type transition struct {
	name      string
	event     lifecycle.Event
	bookingID int64
	payload   Payload
	mutate    mutateFunc

	executed   bool
	undone     bool
	before     domain.LifecycleSnapshot
	after      domain.LifecycleSnapshot
	actor      string
	executedAt time.Time
}

func newTransition(name string, event lifecycle.Event, bookingID int64, payload Payload, mutate mutateFunc) *transition {
	if payload == nil {
		payload = Payload{}
	}
	return &transition{
		name:      name,
		event:     event,
		bookingID: bookingID,
		payload:   payload,
		mutate:    mutate,
	}
}

func (c *transition) Name() string {
	return c.name
}

func (c *transition) BookingID() int64 {
	return c.bookingID
}

// Payload возвращает копию данных команды
func (c *transition) Payload() Payload {
	p := make(Payload, len(c.payload))
	for k, v := range c.payload {
		p[k] = v
	}
	return p
}

// CanUndo true только для выполненной и ещё не отменённой команды с обратимым переходом
func (c *transition) CanUndo() bool {
	return c.executed && !c.undone && lifecycle.IsInvertible(c.event)
}

func (c *transition) Summary() Summary {
	return Summary{
		Name:       c.name,
		BookingID:  c.bookingID,
		Payload:    c.Payload(),
		CanUndo:    c.CanUndo(),
		Actor:      c.actor,
		ExecutedAt: c.executedAt,
	}
}

// Before снимок состояния до выполнения
func (c *transition) Before() domain.LifecycleSnapshot {
	return c.before
}

func (c *transition) Execute(ctx context.Context, env Env) (*Outcome, error) {
	if c.executed {
		return nil, fmt.Errorf("%w: %s booking=%d", ErrAlreadyExecuted, c.name, c.bookingID)
	}

	// 1. Загружаем бронирование
	booking, err := c.load(ctx, env)
	if err != nil {
		return nil, err
	}

	// 2. Проверяем переход (отказ - без записи)
	from := booking.State()
	to, err := lifecycle.ValidateTransition(from, c.event)
	if err != nil {
		return nil, err
	}

	// 3. Применяем изменения и сохраняем
	before := booking.Snapshot()
	now := env.Clock.Now()
	booking.Status = to.Status
	booking.PaymentStatus = to.PaymentStatus
	if c.mutate != nil {
		c.mutate(booking, now)
	}
	booking.UpdatedAt = now

	saved, err := c.save(ctx, env, booking, "Execute")
	if err != nil {
		return nil, err
	}

	c.before = before
	c.after = saved.Snapshot()
	c.executed = true
	c.actor = reqctx.Actor(ctx)
	c.executedAt = now

	// 4. Отправляем доменное событие
	name, _ := lifecycle.DomainEvent(c.event)
	emitted := c.emit(ctx, env, name, saved, now, c.eventData(from, to))

	return &Outcome{
		Command:      c.name,
		BookingID:    c.bookingID,
		From:         from,
		To:           saved.State(),
		Event:        name,
		EventEmitted: emitted,
		Booking:      saved,
	}, nil
}

func (c *transition) Undo(ctx context.Context, env Env) (*Outcome, error) {
	if !c.executed {
		return nil, fmt.Errorf("%w: %s booking=%d", ErrNotExecuted, c.name, c.bookingID)
	}
	if c.undone {
		return nil, fmt.Errorf("%w: %s booking=%d", ErrAlreadyUndone, c.name, c.bookingID)
	}

	inverse, err := lifecycle.InverseOf(c.event)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotInvertible, c.name, err)
	}

	// 1. Проверяем, что бронирование не менялось после выполнения
	booking, err := c.load(ctx, env)
	if err != nil {
		return nil, err
	}
	if !booking.Snapshot().Equal(c.after) {
		return nil, fmt.Errorf("%w: %s booking=%d status=%s payment=%s",
			ErrStaleState, c.name, c.bookingID, booking.Status, booking.PaymentStatus)
	}

	// 2. Восстанавливаем снимок как есть
	from := booking.State()
	now := env.Clock.Now()
	booking.Restore(c.before)
	booking.UpdatedAt = now

	saved, err := c.save(ctx, env, booking, "Undo")
	if err != nil {
		return nil, err
	}
	c.undone = true

	// 3. Событие обратного перехода
	name, _ := lifecycle.DomainEvent(inverse)
	data := c.eventData(from, saved.State())
	data["undoneCommand"] = c.name
	emitted := c.emit(ctx, env, name, saved, now, data)

	return &Outcome{
		Command:      c.name,
		BookingID:    c.bookingID,
		From:         from,
		To:           saved.State(),
		Event:        name,
		EventEmitted: emitted,
		Booking:      saved,
	}, nil
}

func (c *transition) load(ctx context.Context, env Env) (*domain.Booking, error) {
	booking, err := env.Repository.GetByID(ctx, c.bookingID)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, c.bookingID)
		}
		return nil, fmt.Errorf("%w: %s - get booking %d: %v", ErrRepository, c.name, c.bookingID, err)
	}
	return booking, nil
}

func (c *transition) save(ctx context.Context, env Env, booking *domain.Booking, step string) (*domain.Booking, error) {
	saved, err := env.Repository.Save(ctx, booking)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrVersionConflict):
			return nil, fmt.Errorf("%w: %s %s - booking %d", ErrConcurrentModification, c.name, step, c.bookingID)
		case errors.Is(err, storage.ErrBookingNotFound):
			return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, c.bookingID)
		default:
			return nil, fmt.Errorf("%w: %s %s - save booking %d: %v", ErrRepository, c.name, step, c.bookingID, err)
		}
	}
	return saved, nil
}

// emit отправляет событие; ошибка отправки не откатывает запись
func (c *transition) emit(ctx context.Context, env Env, name string, b *domain.Booking, now time.Time, data map[string]interface{}) bool {
	if env.Events == nil {
		return false
	}

	err := env.Events.Emit(ctx, domain.LifecycleEvent{
		Name:              name,
		BookingID:         b.ID,
		ReservationNumber: b.ReservationNumber,
		Actor:             reqctx.Actor(ctx),
		RequestID:         reqctx.RequestID(ctx),
		OccurredAt:        now,
		Data:              data,
	})
	if err != nil {
		if env.Logger != nil {
			env.Logger.Warn("%s: failed to emit %s for booking=%d request_id=%s: %v",
				c.name, name, b.ID, reqctx.RequestID(ctx), err)
		}
		return false
	}
	return true
}

func (c *transition) eventData(from, to domain.State) map[string]interface{} {
	data := map[string]interface{}{
		"command":           c.name,
		"fromStatus":        from.Status.String(),
		"toStatus":          to.Status.String(),
		"fromPaymentStatus": from.PaymentStatus.String(),
		"toPaymentStatus":   to.PaymentStatus.String(),
	}
	for k, v := range c.payload {
		data[k] = v
	}
	return data
}
