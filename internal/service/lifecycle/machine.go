// Package lifecycle - машина состояний бронирования: единственный источник правды
// о допустимых переходах статуса бронирования и статуса оплаты и об их обратных переходах.
// Все функции чистые и не имеют побочных эффектов.
package lifecycle

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

// ValidateTransition проверяет событие относительно текущего состояния и возвращает новое состояние
//
// Ожидаемые отказы возвращаются как *Rejection (errors.Is с ErrInvalidFromTerminalState,
// ErrUnknownEvent, ErrPaymentPrecondition, ErrInvalidTransition).
// Неизвестное значение статуса - ошибка программиста, возвращается ErrUnknownState.
func ValidateTransition(current domain.State, event Event) (domain.State, error) {
	if !current.Status.IsValid() || !current.PaymentStatus.IsValid() {
		return current, fmt.Errorf("%w: status=%q payment=%q", ErrUnknownState, current.Status, current.PaymentStatus)
	}

	r, ok := transitions[event]
	if !ok {
		return current, reject(ReasonUnknownEvent, event, current)
	}

	if current.Status.IsTerminal() {
		return current, reject(ReasonInvalidFromTerminalState, event, current)
	}

	next := current
	if r.status != nil {
		to, ok := r.status[current.Status]
		if !ok {
			return current, reject(ReasonInvalidTransition, event, current)
		}
		next.Status = to
	}
	if r.payment != nil {
		to, ok := r.payment[current.PaymentStatus]
		if !ok {
			return current, reject(ReasonInvalidTransition, event, current)
		}
		next.PaymentStatus = to
	}

	if r.requiredPayment != nil && !containsPayment(r.requiredPayment, current.PaymentStatus) {
		return current, reject(ReasonPaymentPrecondition, event, current)
	}

	return next, nil
}

// InverseOf возвращает обратное событие
// ErrNotInvertible - переход необратим (отмена, завершение, возврат средств)
func InverseOf(event Event) (Event, error) {
	r, ok := transitions[event]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownEvent, event)
	}
	if r.inverse == "" {
		return "", fmt.Errorf("%w: %s", ErrNotInvertible, event)
	}
	return r.inverse, nil
}

// IsInvertible сообщает, есть ли у события обратный переход
func IsInvertible(event Event) bool {
	_, err := InverseOf(event)
	return err == nil
}

// DomainEvent возвращает имя доменного события для перехода
func DomainEvent(event Event) (string, error) {
	r, ok := transitions[event]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownEvent, event)
	}
	return r.domainEvent, nil
}

// IsKnown сообщает, есть ли событие в таблице переходов
func IsKnown(event Event) bool {
	_, ok := transitions[event]
	return ok
}

// Events возвращает все известные события в алфавитном порядке
func Events() []Event {
	events := make([]Event, 0, len(transitions))
	for e := range transitions {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i] < events[j] })
	return events
}

// AllowedEvents возвращает события, допустимые из указанного состояния
func AllowedEvents(current domain.State) []Event {
	allowed := make([]Event, 0)
	for _, e := range Events() {
		if _, err := ValidateTransition(current, e); err == nil {
			allowed = append(allowed, e)
		}
	}
	return allowed
}

func containsPayment(list []domain.PaymentStatus, s domain.PaymentStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
