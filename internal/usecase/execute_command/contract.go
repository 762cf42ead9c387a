package execute_command

import (
	"context"
	"encoding/json"

	"github.com/m04kA/SMC-BookingLifecycle/internal/service/commands"
)

// CommandRegistry реестр команд
type CommandRegistry interface {
	Build(name string, bookingID int64, payload json.RawMessage) (commands.Command, error)
}

// CommandEngine движок выполнения команд
type CommandEngine interface {
	Execute(ctx context.Context, cmd commands.Command) (*commands.Outcome, error)
	HistorySize() int
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
