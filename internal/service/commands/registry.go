package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Factory создаёт команду по идентификатору бронирования и JSON payload
type Factory func(bookingID int64, payload json.RawMessage) (Command, error)

// Registry реестр команд: имя -> фабрика
// Движок не знает конкретных команд, только ищет их здесь
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry создает пустой реестр
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// NewDefaultRegistry создает реестр со всеми командами жизненного цикла
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.mustRegister(NameConfirmBooking, noPayload(NewConfirmBooking))
	r.mustRegister(NameRevertToPending, noPayload(NewRevertToPending))
	r.mustRegister(NameStartBooking, noPayload(NewStartBooking))
	r.mustRegister(NameCompleteBooking, noPayload(NewCompleteBooking))
	r.mustRegister(NameRequestPayment, noPayload(NewRequestPayment))
	r.mustRegister(NameCancelBooking, withField(PayloadReason, NewCancelBooking))
	r.mustRegister(NameMarkPaid, withField(PayloadPaymentReference, NewMarkPaid))
	r.mustRegister(NameFailPayment, withField(PayloadReason, NewFailPayment))
	r.mustRegister(NameRefundPayment, withField(PayloadReason, NewRefundPayment))
	return r
}

// Register добавляет фабрику команды
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" || factory == nil {
		return fmt.Errorf("%w: empty name or factory", ErrInvalidPayload)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, name)
	}
	r.factories[name] = factory
	return nil
}

// Build создаёт команду по имени
func (r *Registry) Build(name string, bookingID int64, payload json.RawMessage) (Command, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidPayload)
	}
	return factory(bookingID, payload)
}

// Names возвращает зарегистрированные имена в алфавитном порядке
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) mustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

func noPayload(ctor func(bookingID int64) Command) Factory {
	return func(bookingID int64, _ json.RawMessage) (Command, error) {
		return ctor(bookingID), nil
	}
}

func withField(field string, ctor func(bookingID int64, value string) (Command, error)) Factory {
	return func(bookingID int64, payload json.RawMessage) (Command, error) {
		fields, err := decodePayload(payload)
		if err != nil {
			return nil, err
		}
		return ctor(bookingID, fields[field])
	}
}

// decodePayload разбирает payload как объект строковых полей; пустой payload и null допустимы
func decodePayload(payload json.RawMessage) (map[string]string, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return map[string]string{}, nil
	}

	fields := make(map[string]string)
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return fields, nil
}
