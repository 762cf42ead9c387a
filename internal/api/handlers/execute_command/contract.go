package execute_command

import (
	"context"

	executeCommand "github.com/m04kA/SMC-BookingLifecycle/internal/usecase/execute_command"
)

type ExecuteCommandUseCase interface {
	Execute(ctx context.Context, req *executeCommand.Request) (*executeCommand.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
