package commands

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/logger"
)

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

type recordingSink struct {
	mu     sync.Mutex
	events []domain.LifecycleEvent
	err    error
}

func (s *recordingSink) Emit(_ context.Context, e domain.LifecycleEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, e)
	return nil
}

func (s *recordingSink) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.events))
	for _, e := range s.events {
		names = append(names, e.Name)
	}
	return names
}

// countingRepo считает записи и может подменить ошибку записи
type countingRepo struct {
	*memory.Repository
	saves   int
	saveErr error
}

func (r *countingRepo) Save(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	r.saves++
	return r.Repository.Save(ctx, b)
}

var errDiskFull = errors.New("disk full")

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func newEnv(t *testing.T) (Env, *countingRepo, *recordingSink) {
	t.Helper()
	repo := &countingRepo{Repository: memory.NewRepository()}
	sink := &recordingSink{}
	return Env{
		Repository: repo,
		Events:     sink,
		Clock:      fixedClock{t: testNow},
		Logger:     logger.NewNop(),
	}, repo, sink
}

func seed(t *testing.T, repo *countingRepo, status domain.BookingStatus, payment domain.PaymentStatus) *domain.Booking {
	t.Helper()
	b, err := repo.Create(context.Background(), &domain.Booking{
		ReservationNumber: "BK-20261101-" + string(status) + "-" + string(payment),
		RequesterID:       1,
		ProviderID:        2,
		ServiceID:         3,
		ServiceName:       "Consultation",
		ScheduledAt:       testNow.Add(72 * time.Hour),
		DurationMinutes:   30,
		TotalAmount:       250000,
		Currency:          "USD",
		Status:            status,
		PaymentStatus:     payment,
	})
	require.NoError(t, err)
	return b
}
