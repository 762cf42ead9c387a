package commands

import (
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

// Env зависимости, через которые команда читает и изменяет бронирование
type Env struct {
	Repository Repository
	Events     EventSink
	Clock      TimeProvider
	Logger     Logger
}

// Payload данные команды (причина отмены, номер платежа)
type Payload map[string]string

// Outcome результат выполнения или отмены команды
type Outcome struct {
	Command      string
	BookingID    int64
	From         domain.State
	To           domain.State
	Event        string
	EventEmitted bool
	Booking      *domain.Booking
}

// Summary описание команды для журнала
type Summary struct {
	Name       string
	BookingID  int64
	Payload    Payload
	CanUndo    bool
	Actor      string
	ExecutedAt time.Time
}
