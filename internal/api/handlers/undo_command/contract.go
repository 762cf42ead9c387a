package undo_command

import (
	"context"

	"github.com/m04kA/SMC-BookingLifecycle/internal/service/engine"
)

type CommandEngine interface {
	Undo(ctx context.Context, actor string) (*engine.UndoResult, error)
	HistorySize() int
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
