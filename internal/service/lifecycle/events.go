package lifecycle

import "github.com/m04kA/SMC-BookingLifecycle/internal/domain"

// Event запрошенное изменение жизненного цикла бронирования
type Event string

const (
	// Статус бронирования
	EventConfirm           Event = "confirm"
	EventRevertToPending   Event = "revert_to_pending"
	EventStart             Event = "start"
	EventRevertToConfirmed Event = "revert_to_confirmed"
	EventComplete          Event = "complete"
	EventCancel            Event = "cancel"

	// Статус оплаты
	EventRequestPayment Event = "request_payment"
	EventResetPayment   Event = "reset_payment"
	EventMarkPaid       Event = "mark_paid"
	EventVoidPayment    Event = "void_payment"
	EventFailPayment    Event = "fail_payment"
	EventRetryPayment   Event = "retry_payment"
	EventRefund         Event = "refund"
)

// Имена доменных событий, отправляемых после успешного перехода
const (
	DomainBookingCreated              = "BookingCreated"
	DomainBookingConfirmed            = "BookingConfirmed"
	DomainBookingConfirmationReverted = "BookingConfirmationReverted"
	DomainBookingStarted              = "BookingStarted"
	DomainBookingStartReverted        = "BookingStartReverted"
	DomainBookingCompleted            = "BookingCompleted"
	DomainBookingCancelled            = "BookingCancelled"
	DomainPaymentRequested            = "PaymentRequested"
	DomainPaymentRequestReverted      = "PaymentRequestReverted"
	DomainPaymentReceived             = "PaymentReceived"
	DomainPaymentVoided               = "PaymentVoided"
	DomainPaymentFailed               = "PaymentFailed"
	DomainPaymentRetried              = "PaymentRetried"
	DomainPaymentRefunded             = "PaymentRefunded"
)

// rule строка таблицы переходов
// Событие меняет ровно одну ось: либо статус бронирования, либо статус оплаты
type rule struct {
	status  map[domain.BookingStatus]domain.BookingStatus
	payment map[domain.PaymentStatus]domain.PaymentStatus

	// requiredPayment допустимые статусы оплаты для перехода (nil - без ограничений)
	requiredPayment []domain.PaymentStatus

	inverse     Event // пусто - переход необратим
	domainEvent string
}

// transitions статическая таблица переходов, не изменяется во время работы
var transitions = map[Event]rule{
	EventConfirm: {
		status:      map[domain.BookingStatus]domain.BookingStatus{domain.StatusPending: domain.StatusConfirmed},
		inverse:     EventRevertToPending,
		domainEvent: DomainBookingConfirmed,
	},
	EventRevertToPending: {
		status:      map[domain.BookingStatus]domain.BookingStatus{domain.StatusConfirmed: domain.StatusPending},
		inverse:     EventConfirm,
		domainEvent: DomainBookingConfirmationReverted,
	},
	EventStart: {
		status:      map[domain.BookingStatus]domain.BookingStatus{domain.StatusConfirmed: domain.StatusInProgress},
		inverse:     EventRevertToConfirmed,
		domainEvent: DomainBookingStarted,
	},
	EventRevertToConfirmed: {
		status:      map[domain.BookingStatus]domain.BookingStatus{domain.StatusInProgress: domain.StatusConfirmed},
		inverse:     EventStart,
		domainEvent: DomainBookingStartReverted,
	},
	EventComplete: {
		status:          map[domain.BookingStatus]domain.BookingStatus{domain.StatusInProgress: domain.StatusCompleted},
		requiredPayment: []domain.PaymentStatus{domain.PaymentPaid},
		domainEvent:     DomainBookingCompleted,
	},
	EventCancel: {
		status: map[domain.BookingStatus]domain.BookingStatus{
			domain.StatusPending:   domain.StatusCancelled,
			domain.StatusConfirmed: domain.StatusCancelled,
		},
		// оплаченное или оплачиваемое бронирование сначала возвращается/сбрасывается:
		// после отмены бронирование терминально и оплату уже не изменить
		requiredPayment: []domain.PaymentStatus{domain.PaymentUnpaid, domain.PaymentFailed, domain.PaymentRefunded},
		domainEvent:     DomainBookingCancelled,
	},
	EventRequestPayment: {
		payment:     map[domain.PaymentStatus]domain.PaymentStatus{domain.PaymentUnpaid: domain.PaymentPending},
		inverse:     EventResetPayment,
		domainEvent: DomainPaymentRequested,
	},
	EventResetPayment: {
		payment:     map[domain.PaymentStatus]domain.PaymentStatus{domain.PaymentPending: domain.PaymentUnpaid},
		inverse:     EventRequestPayment,
		domainEvent: DomainPaymentRequestReverted,
	},
	EventMarkPaid: {
		payment: map[domain.PaymentStatus]domain.PaymentStatus{
			domain.PaymentUnpaid:  domain.PaymentPaid,
			domain.PaymentPending: domain.PaymentPaid,
		},
		inverse:     EventVoidPayment,
		domainEvent: DomainPaymentReceived,
	},
	EventVoidPayment: {
		payment:     map[domain.PaymentStatus]domain.PaymentStatus{domain.PaymentPaid: domain.PaymentUnpaid},
		inverse:     EventMarkPaid,
		domainEvent: DomainPaymentVoided,
	},
	EventFailPayment: {
		payment:     map[domain.PaymentStatus]domain.PaymentStatus{domain.PaymentPending: domain.PaymentFailed},
		inverse:     EventRetryPayment,
		domainEvent: DomainPaymentFailed,
	},
	EventRetryPayment: {
		payment:     map[domain.PaymentStatus]domain.PaymentStatus{domain.PaymentFailed: domain.PaymentPending},
		inverse:     EventFailPayment,
		domainEvent: DomainPaymentRetried,
	},
	EventRefund: {
		payment:     map[domain.PaymentStatus]domain.PaymentStatus{domain.PaymentPaid: domain.PaymentRefunded},
		domainEvent: DomainPaymentRefunded,
	},
}
