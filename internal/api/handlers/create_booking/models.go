package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-BookingLifecycle/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RequesterID     int64   `json:"requesterId"`
	ProviderID      int64   `json:"providerId"`
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	ScheduledAt     string  `json:"scheduledAt"` // "2026-10-20T14:00:00Z"
	DurationMinutes int     `json:"durationMinutes"`
	TotalAmount     int64   `json:"totalAmount"`
	Currency        string  `json:"currency"`
	Notes           *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                int64   `json:"id"`
	ReservationNumber string  `json:"reservationNumber"`
	RequesterID       int64   `json:"requesterId"`
	ProviderID        int64   `json:"providerId"`
	ServiceID         int64   `json:"serviceId"`
	ServiceName       string  `json:"serviceName"`
	ScheduledAt       string  `json:"scheduledAt"`
	DurationMinutes   int     `json:"durationMinutes"`
	TotalAmount       int64   `json:"totalAmount"`
	Currency          string  `json:"currency"`
	Notes             *string `json:"notes,omitempty"`
	Status            string  `json:"status"`
	PaymentStatus     string  `json:"paymentStatus"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	scheduledAt, err := time.Parse(time.RFC3339, r.ScheduledAt)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		RequesterID:     r.RequesterID,
		ProviderID:      r.ProviderID,
		ServiceID:       r.ServiceID,
		ServiceName:     r.ServiceName,
		ScheduledAt:     scheduledAt,
		DurationMinutes: r.DurationMinutes,
		TotalAmount:     r.TotalAmount,
		Currency:        r.Currency,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                resp.ID,
		ReservationNumber: resp.ReservationNumber,
		RequesterID:       resp.RequesterID,
		ProviderID:        resp.ProviderID,
		ServiceID:         resp.ServiceID,
		ServiceName:       resp.ServiceName,
		ScheduledAt:       resp.ScheduledAt.Format(time.RFC3339),
		DurationMinutes:   resp.DurationMinutes,
		TotalAmount:       resp.TotalAmount,
		Currency:          resp.Currency,
		Notes:             resp.Notes,
		Status:            resp.Status,
		PaymentStatus:     resp.PaymentStatus,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
	}
}
