package events

import (
	"strings"
	"time"
	"unicode"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

// EnvelopeVersion версия формата сообщения
const EnvelopeVersion = 1

// Envelope сообщение, публикуемое в брокер
type Envelope struct {
	Event      string                 `json:"event"`
	Version    int                    `json:"version"`
	OccurredAt time.Time              `json:"occurredAt"`
	Data       map[string]interface{} `json:"data"`
}

// NewEnvelope собирает сообщение из доменного события
// Идентификаторы бронирования и запроса попадают в data
func NewEnvelope(e domain.LifecycleEvent) Envelope {
	data := make(map[string]interface{}, len(e.Data)+4)
	for k, v := range e.Data {
		data[k] = v
	}
	data["bookingId"] = e.BookingID
	if e.ReservationNumber != "" {
		data["reservationNumber"] = e.ReservationNumber
	}
	if e.Actor != "" {
		data["actor"] = e.Actor
	}
	if e.RequestID != "" {
		data["requestId"] = e.RequestID
	}

	return Envelope{
		Event:      e.Name,
		Version:    EnvelopeVersion,
		OccurredAt: e.OccurredAt.UTC(),
		Data:       data,
	}
}

// RoutingKey переводит имя события в ключ маршрутизации: BookingConfirmed -> booking.confirmed
func RoutingKey(event string) string {
	var b strings.Builder
	for i, r := range event {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('.')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
