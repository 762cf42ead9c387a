package domain

import "time"

// LifecycleEvent доменное событие об изменении бронирования
// Отправляется после успешной записи, доставка best-effort
type LifecycleEvent struct {
	Name              string
	BookingID         int64
	ReservationNumber string
	Actor             string
	RequestID         string
	OccurredAt        time.Time
	Data              map[string]interface{}
}
