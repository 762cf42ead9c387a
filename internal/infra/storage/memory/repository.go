// Package memory - хранилище бронирований в памяти процесса
// Используется при storage.driver = "memory" и в тестах
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/infra/storage"
)

// Repository хранит копии бронирований; наружу отдаются только копии
type Repository struct {
	mu           sync.RWMutex
	nextID       int64
	bookings     map[int64]*domain.Booking
	reservations map[string]int64
	now          func() time.Time
}

// NewRepository создает пустое хранилище
func NewRepository() *Repository {
	return &Repository{
		bookings:     make(map[int64]*domain.Booking),
		reservations: make(map[string]int64),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Create сохраняет новое бронирование, присваивает ID и версию 1
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("Create - context: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reservations[booking.ReservationNumber]; exists {
		return nil, fmt.Errorf("%w: %s", storage.ErrDuplicateReservationNumber, booking.ReservationNumber)
	}

	r.nextID++
	stored := booking.Clone()
	stored.ID = r.nextID
	stored.Version = 1
	now := r.now()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = stored.CreatedAt

	r.bookings[stored.ID] = stored
	r.reservations[stored.ReservationNumber] = stored.ID

	return stored.Clone(), nil
}

// GetByID возвращает копию бронирования
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("GetByID - context: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.bookings[id]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	return stored.Clone(), nil
}

// GetByRequesterID возвращает бронирования заказчика, сначала ближайшие по дате в будущем
func (r *Repository) GetByRequesterID(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("GetByRequesterID - context: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.RequesterID != filter.RequesterID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		result = append(result, b.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].ScheduledAt.Equal(result[j].ScheduledAt) {
			return result[i].ScheduledAt.After(result[j].ScheduledAt)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

// Save перезаписывает бронирование, если версия совпадает с сохранённой
// Возвращает копию с увеличенной версией
func (r *Repository) Save(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("Save - context: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.bookings[booking.ID]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	if stored.Version != booking.Version {
		return nil, fmt.Errorf("%w: id=%d expected=%d actual=%d",
			storage.ErrVersionConflict, booking.ID, booking.Version, stored.Version)
	}

	updated := booking.Clone()
	// номер бронирования и дата создания неизменяемы
	updated.ReservationNumber = stored.ReservationNumber
	updated.CreatedAt = stored.CreatedAt
	updated.Version = stored.Version + 1
	if updated.UpdatedAt.IsZero() {
		updated.UpdatedAt = r.now()
	}

	r.bookings[updated.ID] = updated
	return updated.Clone(), nil
}

// Len количество бронирований
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bookings)
}
