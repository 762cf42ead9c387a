package create_booking

import (
	"time"
)

// Request модель запроса на создание бронирования
type Request struct {
	RequesterID     int64     // ID заказчика
	ProviderID      int64     // ID исполнителя
	ServiceID       int64     // ID услуги
	ServiceName     string    // Название услуги (денормализовано)
	ScheduledAt     time.Time // Начало оказания услуги
	DurationMinutes int       // Длительность в минутах
	TotalAmount     int64     // Сумма в минимальных единицах валюты
	Currency        string    // Код валюты ISO 4217
	Notes           *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                int64
	ReservationNumber string
	RequesterID       int64
	ProviderID        int64
	ServiceID         int64
	ServiceName       string
	ScheduledAt       time.Time
	DurationMinutes   int
	TotalAmount       int64
	Currency          string
	Notes             *string
	Status            string
	PaymentStatus     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
