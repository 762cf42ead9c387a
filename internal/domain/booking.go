package domain

import "time"

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// PaymentStatus represents the payment status of a booking
// Tracked independently from BookingStatus
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// IsValid returns true if the status is a known booking status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true if no lifecycle transition is possible from this status
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s BookingStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a known payment status
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentUnpaid, PaymentPending, PaymentPaid, PaymentRefunded, PaymentFailed:
		return true
	}
	return false
}

func (s PaymentStatus) String() string {
	return string(s)
}

// Booking represents a reservation of a provider's service by a requester
type Booking struct {
	ID                int64
	ReservationNumber string // присваивается при создании и больше не меняется
	RequesterID       int64
	ProviderID        int64
	ServiceID         int64
	ServiceName       string
	ScheduledAt       time.Time
	DurationMinutes   int
	TotalAmount       int64 // в минимальных единицах валюты (копейки, центы)
	Currency          string
	Notes             *string

	Status        BookingStatus
	PaymentStatus PaymentStatus

	PaymentReference   *string
	PaidAt             *time.Time
	PaymentFailure     *string
	CancellationReason *string
	CancelledAt        *time.Time

	// Version увеличивается хранилищем при каждом сохранении (optimistic locking)
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// State returns the combined lifecycle state of the booking
func (b *Booking) State() State {
	return State{Status: b.Status, PaymentStatus: b.PaymentStatus}
}

// IsTerminal returns true if the booking is completed or cancelled
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsPaid returns true if the payment has been captured
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}

// Clone returns a deep copy of the booking
func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}
	c := *b
	c.Notes = cloneString(b.Notes)
	c.PaymentReference = cloneString(b.PaymentReference)
	c.PaidAt = cloneTime(b.PaidAt)
	c.PaymentFailure = cloneString(b.PaymentFailure)
	c.CancellationReason = cloneString(b.CancellationReason)
	c.CancelledAt = cloneTime(b.CancelledAt)
	return &c
}

// State combined booking and payment status
type State struct {
	Status        BookingStatus
	PaymentStatus PaymentStatus
}

// BookingsFilter фильтр для получения бронирований заказчика
type BookingsFilter struct {
	RequesterID int64
	Status      *BookingStatus
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
