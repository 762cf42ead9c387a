package booking

import (
	"github.com/m04kA/SMC-BookingLifecycle/pkg/dbmetrics"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
// Подходят *sql.DB, *sql.Tx и *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor

// scanner общий интерфейс *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}
