package events

import (
	"context"
	"encoding/json"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

// LogSink пишет доменные события в лог вместо брокера
type LogSink struct {
	logger   Logger
	observer Observer
}

func NewLogSink(logger Logger, observer Observer) *LogSink {
	return &LogSink{logger: logger, observer: observer}
}

func (s *LogSink) Emit(_ context.Context, e domain.LifecycleEvent) error {
	body, err := json.Marshal(NewEnvelope(e))
	if err != nil {
		s.logger.Warn("Event %s for booking_id=%d cannot be encoded: %v", e.Name, e.BookingID, err)
	} else {
		s.logger.Info("Event %s: routing_key=%s, body=%s", e.Name, RoutingKey(e.Name), body)
	}
	if s.observer != nil {
		s.observer.ObserveEvent(e.Name, err)
	}
	return err
}

func (s *LogSink) Close() error {
	return nil
}
