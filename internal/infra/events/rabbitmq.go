package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

// ErrPublish возвращается при ошибке публикации события
var ErrPublish = errors.New("events: failed to publish")

const exchangeKind = "topic"

// RabbitMQSink публикует доменные события в topic exchange
type RabbitMQSink struct {
	conn     *amqp.Connection
	ch       Channel
	exchange string
	observer Observer
	logger   Logger
}

// NewRabbitMQSink подключается к брокеру и объявляет exchange
func NewRabbitMQSink(url, exchange string, observer Observer, logger Logger) (*RabbitMQSink, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, exchangeKind, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	sink := NewRabbitMQSinkWithChannel(ch, exchange, observer, logger)
	sink.conn = conn
	return sink, nil
}

// NewRabbitMQSinkWithChannel использует уже открытый канал; exchange должен существовать
func NewRabbitMQSinkWithChannel(ch Channel, exchange string, observer Observer, logger Logger) *RabbitMQSink {
	return &RabbitMQSink{
		ch:       ch,
		exchange: exchange,
		observer: observer,
		logger:   logger,
	}
}

// Emit публикует событие; ошибка возвращается вызывающему и не откатывает запись
func (s *RabbitMQSink) Emit(ctx context.Context, e domain.LifecycleEvent) error {
	err := s.publish(ctx, e)
	if s.observer != nil {
		s.observer.ObserveEvent(e.Name, err)
	}
	return err
}

func (s *RabbitMQSink) publish(ctx context.Context, e domain.LifecycleEvent) error {
	body, err := json.Marshal(NewEnvelope(e))
	if err != nil {
		return fmt.Errorf("%w: Emit - marshal %s: %v", ErrPublish, e.Name, err)
	}

	key := RoutingKey(e.Name)
	err = s.ch.PublishWithContext(ctx, s.exchange, key, false, false, amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     uuid.NewString(),
		CorrelationId: e.RequestID,
		Type:          e.Name,
		Timestamp:     e.OccurredAt,
		Body:          body,
	})
	if err != nil {
		return fmt.Errorf("%w: Emit - publish %s to %s/%s: %v", ErrPublish, e.Name, s.exchange, key, err)
	}

	s.logger.Info("Event published: event=%s, booking_id=%d, routing_key=%s", e.Name, e.BookingID, key)
	return nil
}

// Close закрывает канал и соединение
func (s *RabbitMQSink) Close() error {
	if s.ch != nil {
		_ = s.ch.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
