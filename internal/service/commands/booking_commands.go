package commands

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/lifecycle"
)

// Имена команд
const (
	NameConfirmBooking  = "ConfirmBooking"
	NameRevertToPending = "RevertToPending"
	NameStartBooking    = "StartBooking"
	NameCompleteBooking = "CompleteBooking"
	NameCancelBooking   = "CancelBooking"
	NameRequestPayment  = "RequestPayment"
	NameMarkPaid        = "MarkPaid"
	NameFailPayment     = "FailPayment"
	NameRefundPayment   = "RefundPayment"
)

// Ключи payload
const (
	PayloadReason           = "reason"
	PayloadPaymentReference = "paymentReference"
)

// NewConfirmBooking pending -> confirmed
func NewConfirmBooking(bookingID int64) Command {
	return newTransition(NameConfirmBooking, lifecycle.EventConfirm, bookingID, nil, nil)
}

// NewRevertToPending confirmed -> pending
func NewRevertToPending(bookingID int64) Command {
	return newTransition(NameRevertToPending, lifecycle.EventRevertToPending, bookingID, nil, nil)
}

// NewStartBooking confirmed -> in_progress
func NewStartBooking(bookingID int64) Command {
	return newTransition(NameStartBooking, lifecycle.EventStart, bookingID, nil, nil)
}

// NewCompleteBooking in_progress -> completed, только для оплаченного бронирования. Необратима
func NewCompleteBooking(bookingID int64) Command {
	return newTransition(NameCompleteBooking, lifecycle.EventComplete, bookingID, nil, nil)
}

// NewCancelBooking pending|confirmed -> cancelled. Необратима
func NewCancelBooking(bookingID int64, reason string) (Command, error) {
	reason, err := normalizeText(PayloadReason, reason, domain.MaxReasonLength, false)
	if err != nil {
		return nil, err
	}

	return newTransition(NameCancelBooking, lifecycle.EventCancel, bookingID, optionalPayload(PayloadReason, reason),
		func(b *domain.Booking, now time.Time) {
			if reason != "" {
				b.CancellationReason = &reason
			}
			cancelledAt := now
			b.CancelledAt = &cancelledAt
		}), nil
}

func normalizeText(field, value string, maxLen int, required bool) (string, error) {
	value = strings.TrimSpace(value)
	if required && value == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidPayload, field)
	}
	if utf8.RuneCountInString(value) > maxLen {
		return "", fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidPayload, field, maxLen)
	}
	return value, nil
}

func optionalPayload(key, value string) Payload {
	if value == "" {
		return nil
	}
	return Payload{key: value}
}
