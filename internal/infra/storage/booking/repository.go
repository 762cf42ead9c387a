package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/infra/storage"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/psqlbuilder"
)

const (
	tableBookings = "bookings"

	// pgUniqueViolation код ошибки PostgreSQL unique_violation
	pgUniqueViolation = "23505"
)

var bookingColumns = []string{
	"id",
	"reservation_number",
	"requester_id",
	"provider_id",
	"service_id",
	"service_name",
	"scheduled_at",
	"duration_minutes",
	"total_amount",
	"currency",
	"notes",
	"status",
	"payment_status",
	"payment_reference",
	"paid_at",
	"payment_failure",
	"cancellation_reason",
	"cancelled_at",
	"version",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование с version = 1
// Повтор номера бронирования возвращает storage.ErrDuplicateReservationNumber
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	query, args, err := insertQuery(booking)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", storage.ErrDuplicateReservationNumber, booking.ReservationNumber)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return created, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByRequesterID получает список бронирований заказчика
// Сначала новые; опционально фильтрует по статусу
func (r *Repository) GetByRequesterID(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	query, args, err := requesterQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequesterID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequesterID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByRequesterID - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByRequesterID - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// Save сохраняет изменяемые поля бронирования
// Запись проходит только при совпадении version, после неё version увеличивается на 1
// Номер бронирования и created_at не перезаписываются
func (r *Repository) Save(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	query, args, err := saveQuery(booking)
	if err != nil {
		return nil, fmt.Errorf("%w: Save - build update query: %v", ErrBuildQuery, err)
	}

	saved, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if err == nil {
		return saved, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: Save - execute update: %v", ErrExecQuery, err)
	}

	// Ни одна строка не обновлена: бронирования нет или version устарела
	exists, err := r.exists(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, storage.ErrBookingNotFound
	}
	return nil, fmt.Errorf("%w: booking id=%d, version=%d", storage.ErrVersionConflict, booking.ID, booking.Version)
}

func (r *Repository) exists(ctx context.Context, id int64) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists - scan: %v", ErrScanRow, err)
	}
	return true, nil
}

func insertQuery(b *domain.Booking) (string, []interface{}, error) {
	return psqlbuilder.Insert(tableBookings).
		Columns(
			"reservation_number",
			"requester_id",
			"provider_id",
			"service_id",
			"service_name",
			"scheduled_at",
			"duration_minutes",
			"total_amount",
			"currency",
			"notes",
			"status",
			"payment_status",
			"version",
		).
		Values(
			b.ReservationNumber,
			b.RequesterID,
			b.ProviderID,
			b.ServiceID,
			b.ServiceName,
			b.ScheduledAt,
			b.DurationMinutes,
			b.TotalAmount,
			b.Currency,
			b.Notes,
			b.Status,
			b.PaymentStatus,
			1,
		).
		Suffix(returning()).
		ToSql()
}

func requesterQuery(filter domain.BookingsFilter) (string, []interface{}, error) {
	builder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"requester_id": filter.RequesterID}).
		OrderBy("scheduled_at DESC", "id DESC")

	// Фильтрация по статусу, если указан
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}

	return builder.ToSql()
}

func saveQuery(b *domain.Booking) (string, []interface{}, error) {
	return psqlbuilder.Update(tableBookings).
		Set("service_name", b.ServiceName).
		Set("scheduled_at", b.ScheduledAt).
		Set("duration_minutes", b.DurationMinutes).
		Set("total_amount", b.TotalAmount).
		Set("currency", b.Currency).
		Set("notes", b.Notes).
		Set("status", b.Status).
		Set("payment_status", b.PaymentStatus).
		Set("payment_reference", b.PaymentReference).
		Set("paid_at", b.PaidAt).
		Set("payment_failure", b.PaymentFailure).
		Set("cancellation_reason", b.CancellationReason).
		Set("cancelled_at", b.CancelledAt).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID, "version": b.Version}).
		Suffix(returning()).
		ToSql()
}

func returning() string {
	return "RETURNING " + strings.Join(bookingColumns, ", ")
}

// scanBooking сканирует строку в порядке bookingColumns
func scanBooking(row scanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ReservationNumber,
		&booking.RequesterID,
		&booking.ProviderID,
		&booking.ServiceID,
		&booking.ServiceName,
		&booking.ScheduledAt,
		&booking.DurationMinutes,
		&booking.TotalAmount,
		&booking.Currency,
		&booking.Notes,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentReference,
		&booking.PaidAt,
		&booking.PaymentFailure,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&booking.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}
