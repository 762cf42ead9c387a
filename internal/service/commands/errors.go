package commands

import "errors"

var (
	// ErrBookingNotFound возвращается, когда целевое бронирование не найдено
	ErrBookingNotFound = errors.New("commands: booking not found")

	// ErrStaleState возвращается при отмене, если бронирование изменено после выполнения команды
	ErrStaleState = errors.New("commands: booking state changed since execution")

	// ErrNotInvertible возвращается при отмене команды с необратимым переходом
	ErrNotInvertible = errors.New("commands: command is not invertible")

	// ErrAlreadyExecuted возвращается при повторном выполнении команды
	ErrAlreadyExecuted = errors.New("commands: command already executed")

	// ErrNotExecuted возвращается при отмене невыполненной команды
	ErrNotExecuted = errors.New("commands: command not executed")

	// ErrAlreadyUndone возвращается при повторной отмене команды
	ErrAlreadyUndone = errors.New("commands: command already undone")

	// ErrUnknownCommand возвращается для имени команды, отсутствующего в реестре
	ErrUnknownCommand = errors.New("commands: unknown command")

	// ErrDuplicateCommand возвращается при повторной регистрации имени команды
	ErrDuplicateCommand = errors.New("commands: command already registered")

	// ErrInvalidPayload возвращается при некорректных данных команды
	ErrInvalidPayload = errors.New("commands: invalid payload")

	// ErrConcurrentModification возвращается, когда бронирование изменено параллельной записью
	ErrConcurrentModification = errors.New("commands: booking modified concurrently")

	// ErrRepository возвращается при ошибках хранилища
	ErrRepository = errors.New("commands: repository error")
)
