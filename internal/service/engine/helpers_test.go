package engine

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/commands"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/logger"
)

type clock struct{}

func (clock) Now() time.Time {
	return time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
}

type sink struct {
	mu    sync.Mutex
	names []string
}

func (s *sink) Emit(_ context.Context, e domain.LifecycleEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names = append(s.names, e.Name)
	return nil
}

type recorder struct {
	mu       sync.Mutex
	commands map[string]int
	undos    map[string]int
	size     int
}

func newRecorder() *recorder {
	return &recorder{commands: map[string]int{}, undos: map[string]int{}}
}

func (r *recorder) ObserveCommand(command, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[command+"/"+result]++
}

func (r *recorder) ObserveUndo(command, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.undos[command+"/"+result]++
}

func (r *recorder) SetHistorySize(size int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.size = size
}

// slowRepo блокирует запись до истечения контекста
type slowRepo struct {
	*memory.Repository
}

func (r slowRepo) Save(ctx context.Context, _ *domain.Booking) (*domain.Booking, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type fixture struct {
	engine   *Engine
	repo     *memory.Repository
	sink     *sink
	recorder *recorder
}

func newFixture(t *testing.T, historySize int) *fixture {
	t.Helper()
	repo := memory.NewRepository()
	s := &sink{}
	rec := newRecorder()
	env := commands.Env{Repository: repo, Events: s, Clock: clock{}}
	eng := New(env, Config{HistorySize: historySize, OperationTimeout: time.Second}, logger.NewNop(), rec)
	return &fixture{engine: eng, repo: repo, sink: s, recorder: rec}
}

var reservationSeq int

func (f *fixture) seed(t *testing.T, status domain.BookingStatus, payment domain.PaymentStatus) int64 {
	t.Helper()
	reservationSeq++
	b, err := f.repo.Create(context.Background(), &domain.Booking{
		ReservationNumber: fmt.Sprintf("BK-20261020-%08d", reservationSeq),
		RequesterID:       11,
		ProviderID:        22,
		ServiceID:         33,
		ServiceName:       "Haircut",
		ScheduledAt:       time.Date(2026, 10, 20, 14, 0, 0, 0, time.UTC),
		DurationMinutes:   45,
		TotalAmount:       3000,
		Currency:          "EUR",
		Status:            status,
		PaymentStatus:     payment,
	})
	require.NoError(t, err)
	return b.ID
}

func (f *fixture) state(t *testing.T, id int64) domain.State {
	t.Helper()
	b, err := f.repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return b.State()
}

func (f *fixture) booking(t *testing.T, id int64) *domain.Booking {
	t.Helper()
	b, err := f.repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return b
}

func mustMarkPaid(t *testing.T, id int64, ref string) commands.Command {
	t.Helper()
	cmd, err := commands.NewMarkPaid(id, ref)
	require.NoError(t, err)
	return cmd
}

func mustCancel(t *testing.T, id int64, reason string) commands.Command {
	t.Helper()
	cmd, err := commands.NewCancelBooking(id, reason)
	require.NoError(t, err)
	return cmd
}
