package domain

import "time"

// LifecycleSnapshot captures every booking field a lifecycle command may mutate
// Restoring a snapshot returns these fields to their exact captured values
type LifecycleSnapshot struct {
	Status             BookingStatus
	PaymentStatus      PaymentStatus
	PaymentReference   *string
	PaidAt             *time.Time
	PaymentFailure     *string
	CancellationReason *string
	CancelledAt        *time.Time
}

// Snapshot captures the mutable lifecycle fields of the booking
func (b *Booking) Snapshot() LifecycleSnapshot {
	return LifecycleSnapshot{
		Status:             b.Status,
		PaymentStatus:      b.PaymentStatus,
		PaymentReference:   cloneString(b.PaymentReference),
		PaidAt:             cloneTime(b.PaidAt),
		PaymentFailure:     cloneString(b.PaymentFailure),
		CancellationReason: cloneString(b.CancellationReason),
		CancelledAt:        cloneTime(b.CancelledAt),
	}
}

// Restore overwrites the lifecycle fields of the booking with the snapshot
func (b *Booking) Restore(s LifecycleSnapshot) {
	b.Status = s.Status
	b.PaymentStatus = s.PaymentStatus
	b.PaymentReference = cloneString(s.PaymentReference)
	b.PaidAt = cloneTime(s.PaidAt)
	b.PaymentFailure = cloneString(s.PaymentFailure)
	b.CancellationReason = cloneString(s.CancellationReason)
	b.CancelledAt = cloneTime(s.CancelledAt)
}

// Equal compares snapshots by value
func (s LifecycleSnapshot) Equal(o LifecycleSnapshot) bool {
	return s.Status == o.Status &&
		s.PaymentStatus == o.PaymentStatus &&
		equalString(s.PaymentReference, o.PaymentReference) &&
		equalTime(s.PaidAt, o.PaidAt) &&
		equalString(s.PaymentFailure, o.PaymentFailure) &&
		equalString(s.CancellationReason, o.CancellationReason) &&
		equalTime(s.CancelledAt, o.CancelledAt)
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
