package events

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel подмножество *amqp.Channel, используемое для публикации
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Observer принимает результат отправки события
type Observer interface {
	ObserveEvent(event string, err error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
