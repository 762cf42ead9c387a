package execute_command

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном запросе
	ErrInvalidInput = errors.New("execute_command: invalid input data")
)
