package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/ptr"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                int64   `json:"id"`
	ReservationNumber string  `json:"reservationNumber"`
	RequesterID       int64   `json:"requesterId"`
	ProviderID        int64   `json:"providerId"`
	ServiceID         int64   `json:"serviceId"`
	ServiceName       string  `json:"serviceName"`
	ScheduledAt       string  `json:"scheduledAt"` // RFC 3339
	DurationMinutes   int     `json:"durationMinutes"`
	TotalAmount       int64   `json:"totalAmount"`
	Currency          string  `json:"currency"`
	Notes             *string `json:"notes,omitempty"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	PaymentReference   *string `json:"paymentReference,omitempty"`
	PaidAt             *string `json:"paidAt,omitempty"`
	PaymentFailure     *string `json:"paymentFailure,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                 b.ID,
		ReservationNumber:  b.ReservationNumber,
		RequesterID:        b.RequesterID,
		ProviderID:         b.ProviderID,
		ServiceID:          b.ServiceID,
		ServiceName:        b.ServiceName,
		ScheduledAt:        b.ScheduledAt.Format(time.RFC3339),
		DurationMinutes:    b.DurationMinutes,
		TotalAmount:        b.TotalAmount,
		Currency:           b.Currency,
		Notes:              b.Notes,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		PaymentReference:   b.PaymentReference,
		PaidAt:             formatTime(b.PaidAt),
		PaymentFailure:     b.PaymentFailure,
		CancellationReason: b.CancellationReason,
		CancelledAt:        formatTime(b.CancelledAt),
		Version:            b.Version,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		if dto := FromDomainBooking(b); dto != nil {
			resp.Bookings = append(resp.Bookings, *dto)
		}
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в статус бронирования
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// formatTime ISO 8601 или nil
func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return ptr.Ptr(t.Format(time.RFC3339))
}
