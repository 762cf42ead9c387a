package domain

// Business validation constants
const (
	MinDurationMinutes    = 5
	MaxDurationMinutes    = 480 // 8 hours
	MaxNotesLength        = 500
	MaxReasonLength       = 500
	MaxPaymentRefLength   = 128
	MaxServiceNameLength  = 200
	MaxAdvanceBookingDays = 365
	CurrencyCodeLength    = 3
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ReservationNumberPrefix префикс человекочитаемого номера бронирования
const ReservationNumberPrefix = "BK"

// TerminalStatuses статусы, из которых нет переходов жизненного цикла
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}

// ActiveStatuses статусы бронирований, которые ещё могут меняться
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}
