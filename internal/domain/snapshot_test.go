package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BookingLifecycle/pkg/ptr"
)

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	paidAt := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
	b := &Booking{
		ID:               1,
		Status:           StatusConfirmed,
		PaymentStatus:    PaymentPaid,
		PaymentReference: ptr.Ptr("pi_123"),
		PaidAt:           &paidAt,
	}

	snap := b.Snapshot()

	b.Status = StatusCancelled
	b.PaymentStatus = PaymentRefunded
	b.CancellationReason = ptr.Ptr("client request")
	*b.PaymentReference = "mutated"

	b.Restore(snap)

	assert.Equal(t, StatusConfirmed, b.Status)
	assert.Equal(t, PaymentPaid, b.PaymentStatus)
	assert.Equal(t, "pi_123", *b.PaymentReference)
	assert.Nil(t, b.CancellationReason)
	assert.True(t, b.Snapshot().Equal(snap))
}

func TestSnapshot_IsDetachedFromBooking(t *testing.T) {
	b := &Booking{Status: StatusPending, PaymentStatus: PaymentUnpaid, PaymentReference: ptr.Ptr("ref")}
	snap := b.Snapshot()

	*b.PaymentReference = "changed"

	assert.Equal(t, "ref", *snap.PaymentReference)
}

func TestSnapshotEqual(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.In(time.FixedZone("MSK", 3*3600))

	a := LifecycleSnapshot{Status: StatusCancelled, PaymentStatus: PaymentUnpaid, CancelledAt: &t1}
	b := LifecycleSnapshot{Status: StatusCancelled, PaymentStatus: PaymentUnpaid, CancelledAt: &t2}
	c := LifecycleSnapshot{Status: StatusCancelled, PaymentStatus: PaymentUnpaid}

	assert.True(t, a.Equal(b), "same instant in different zones is equal")
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(LifecycleSnapshot{Status: StatusPending, PaymentStatus: PaymentUnpaid, CancelledAt: &t1}))
}

func TestBookingStatus(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.False(t, BookingStatus("archived").IsValid())
	assert.False(t, PaymentStatus("partially_paid").IsValid())
}

func TestClone_DeepCopiesPointers(t *testing.T) {
	b := &Booking{ID: 5, Notes: ptr.Ptr("window seat")}
	c := b.Clone()

	*c.Notes = "aisle"

	assert.Equal(t, "window seat", *b.Notes)
	assert.Nil(t, (*Booking)(nil).Clone())
}
