package get_command_history

import "github.com/m04kA/SMC-BookingLifecycle/internal/service/commands"

type CommandEngine interface {
	History() []commands.Summary
	HistoryCapacity() int
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
