package engine

import (
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/service/commands"
)

// DefaultHistorySize размер журнала по умолчанию
const DefaultHistorySize = 50

// Результаты операций для метрик
const (
	resultSuccess       = "success"
	resultRejected      = "rejected"
	resultInvalid       = "invalid"
	resultNotFound      = "not_found"
	resultStale         = "stale"
	resultConflict      = "conflict"
	resultTimeout       = "timeout"
	resultError         = "error"
	resultNothingToUndo = "nothing_to_undo"
	resultNotUndoable   = "not_undoable"
)

// Config настройки движка
type Config struct {
	HistorySize      int
	OperationTimeout time.Duration // 0 - без ограничения
}

// UndoResult результат отмены
type UndoResult struct {
	Command   string
	BookingID int64
	Outcome   *commands.Outcome
}
