package lifecycle

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

var (
	// ErrInvalidFromTerminalState возвращается при попытке перехода из завершённого или отменённого бронирования
	ErrInvalidFromTerminalState = errors.New("lifecycle: transition from terminal state")

	// ErrUnknownEvent возвращается для события, отсутствующего в таблице переходов
	ErrUnknownEvent = errors.New("lifecycle: unknown event")

	// ErrPaymentPrecondition возвращается, когда статус оплаты не допускает переход
	ErrPaymentPrecondition = errors.New("lifecycle: payment precondition not met")

	// ErrInvalidTransition возвращается, когда событие недопустимо из текущего состояния
	ErrInvalidTransition = errors.New("lifecycle: invalid transition")

	// ErrNotInvertible возвращается для событий без обратного перехода
	ErrNotInvertible = errors.New("lifecycle: event is not invertible")

	// ErrUnknownState ошибка программиста: в машину состояний попало неизвестное значение статуса
	ErrUnknownState = errors.New("lifecycle: unknown state value")
)

// Reason причина отклонения перехода
type Reason string

const (
	ReasonInvalidFromTerminalState Reason = "INVALID_FROM_TERMINAL_STATE"
	ReasonUnknownEvent             Reason = "UNKNOWN_EVENT"
	ReasonPaymentPrecondition      Reason = "PAYMENT_PRECONDITION"
	ReasonInvalidTransition        Reason = "INVALID_TRANSITION"
)

var reasonErrors = map[Reason]error{
	ReasonInvalidFromTerminalState: ErrInvalidFromTerminalState,
	ReasonUnknownEvent:             ErrUnknownEvent,
	ReasonPaymentPrecondition:      ErrPaymentPrecondition,
	ReasonInvalidTransition:        ErrInvalidTransition,
}

// Rejection ожидаемый отказ машины состояний
// Сравнивается через errors.Is с соответствующей sentinel-ошибкой
type Rejection struct {
	Reason Reason
	Event  Event
	From   domain.State
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%v: event=%s status=%s payment=%s",
		r.Unwrap(), r.Event, r.From.Status, r.From.PaymentStatus)
}

func (r *Rejection) Unwrap() error {
	return reasonErrors[r.Reason]
}

// AsRejection извлекает Rejection из цепочки ошибок
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

func reject(reason Reason, event Event, from domain.State) *Rejection {
	return &Rejection{Reason: reason, Event: event, From: from}
}
