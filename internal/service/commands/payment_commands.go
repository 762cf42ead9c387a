package commands

import (
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/lifecycle"
)

// NewRequestPayment оплата unpaid -> pending
func NewRequestPayment(bookingID int64) Command {
	return newTransition(NameRequestPayment, lifecycle.EventRequestPayment, bookingID, nil,
		func(b *domain.Booking, _ time.Time) {
			b.PaymentFailure = nil
		})
}

// NewMarkPaid оплата unpaid|pending -> paid с номером платежа
func NewMarkPaid(bookingID int64, paymentReference string) (Command, error) {
	ref, err := normalizeText(PayloadPaymentReference, paymentReference, domain.MaxPaymentRefLength, true)
	if err != nil {
		return nil, err
	}

	return newTransition(NameMarkPaid, lifecycle.EventMarkPaid, bookingID, Payload{PayloadPaymentReference: ref},
		func(b *domain.Booking, now time.Time) {
			paidAt := now
			b.PaymentReference = &ref
			b.PaidAt = &paidAt
			b.PaymentFailure = nil
		}), nil
}

// NewFailPayment оплата pending -> failed
func NewFailPayment(bookingID int64, reason string) (Command, error) {
	reason, err := normalizeText(PayloadReason, reason, domain.MaxReasonLength, false)
	if err != nil {
		return nil, err
	}

	return newTransition(NameFailPayment, lifecycle.EventFailPayment, bookingID, optionalPayload(PayloadReason, reason),
		func(b *domain.Booking, _ time.Time) {
			failure := reason
			if failure == "" {
				failure = "payment failed"
			}
			b.PaymentFailure = &failure
		}), nil
}

// NewRefundPayment оплата paid -> refunded. Необратима: деньги уже возвращены
func NewRefundPayment(bookingID int64, reason string) (Command, error) {
	reason, err := normalizeText(PayloadReason, reason, domain.MaxReasonLength, false)
	if err != nil {
		return nil, err
	}

	return newTransition(NameRefundPayment, lifecycle.EventRefund, bookingID, optionalPayload(PayloadReason, reason), nil), nil
}
