package commands

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

// Repository хранилище бронирований, с которым работают команды
// Save выполняет запись с проверкой версии и возвращает сохранённое состояние
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Save(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// EventSink получатель доменных событий
type EventSink interface {
	Emit(ctx context.Context, event domain.LifecycleEvent) error
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
