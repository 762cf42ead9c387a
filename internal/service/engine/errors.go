package engine

import "errors"

var (
	// ErrNothingToUndo возвращается, когда журнал пуст
	ErrNothingToUndo = errors.New("engine: nothing to undo")

	// ErrNotUndoable возвращается, когда последнюю команду журнала нельзя отменить
	// Команда при этом остаётся в журнале
	ErrNotUndoable = errors.New("engine: last command is not undoable")

	// ErrTimeout возвращается, если операция не уложилась в отведённое время
	ErrTimeout = errors.New("engine: operation timed out")
)
