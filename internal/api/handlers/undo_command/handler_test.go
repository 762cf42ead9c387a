package undo_command

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
	"github.com/m04kA/SMC-BookingLifecycle/internal/api/middleware"
	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/commands"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/engine"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/logger"
)

type clock struct{}

func (clock) Now() time.Time {
	return time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
}

type sink struct {
	names []string
}

func (s *sink) Emit(_ context.Context, e domain.LifecycleEvent) error {
	s.names = append(s.names, e.Name)
	return nil
}

type fixture struct {
	router *mux.Router
	repo   *memory.Repository
	engine *engine.Engine
	sink   *sink
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewNop()
	repo := memory.NewRepository()
	s := &sink{}
	eng := engine.New(commands.Env{Repository: repo, Events: s, Clock: clock{}}, engine.Config{HistorySize: 10}, log, nil)

	router := mux.NewRouter()
	router.Use(middleware.Actor)
	router.HandleFunc("/api/v1/commands/undo", NewHandler(eng, log).Handle).Methods(http.MethodPost)
	return &fixture{router: router, repo: repo, engine: eng, sink: s}
}

func (f *fixture) seed(t *testing.T, status domain.BookingStatus, payment domain.PaymentStatus) int64 {
	t.Helper()
	b, err := f.repo.Create(context.Background(), &domain.Booking{
		ReservationNumber: "BK-20261020-UNDO0001",
		RequesterID:       5,
		ProviderID:        6,
		ServiceID:         7,
		ServiceName:       "Massage",
		ScheduledAt:       time.Date(2026, 10, 20, 15, 0, 0, 0, time.UTC),
		DurationMinutes:   60,
		TotalAmount:       4500,
		Currency:          "EUR",
		Status:            status,
		PaymentStatus:     payment,
	})
	require.NoError(t, err)
	return b.ID
}

func (f *fixture) execute(t *testing.T, cmd commands.Command) {
	t.Helper()
	_, err := f.engine.Execute(context.Background(), cmd)
	require.NoError(t, err)
}

func (f *fixture) undo(t *testing.T, body string, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/commands/undo", strings.NewReader(body))
	if header != "" {
		req.Header.Set(middleware.HeaderUserID, header)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_UndoesLastCommand(t *testing.T) {
	f := newFixture(t)
	id := f.seed(t, domain.StatusPending, domain.PaymentUnpaid)
	f.execute(t, commands.NewConfirmBooking(id))

	rec := f.undo(t, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp UndoResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, commands.NameConfirmBooking, resp.Command)
	assert.Equal(t, id, resp.BookingID)
	assert.Equal(t, 0, resp.HistorySize)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, "pending", resp.Booking.Status)
	assert.Equal(t, []string{"BookingConfirmed", "BookingConfirmationReverted"}, f.sink.names)
}

func TestHandle_ActorFromBodyOrHeader(t *testing.T) {
	f := newFixture(t)
	id := f.seed(t, domain.StatusPending, domain.PaymentUnpaid)
	f.execute(t, commands.NewConfirmBooking(id))

	rec := f.undo(t, `{"actor":"ops-7"}`, "user-1")
	assert.Equal(t, http.StatusOK, rec.Code)

	f.execute(t, commands.NewConfirmBooking(id))
	rec = f.undo(t, "", "user-1")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandle_Errors(t *testing.T) {
	t.Run("nothing to undo", func(t *testing.T) {
		f := newFixture(t)

		rec := f.undo(t, "", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, codeNothingToUndo, decodeError(t, rec).Code)
	})

	t.Run("not undoable keeps history", func(t *testing.T) {
		f := newFixture(t)
		id := f.seed(t, domain.StatusPending, domain.PaymentUnpaid)
		cmd, err := commands.NewCancelBooking(id, "customer request")
		require.NoError(t, err)
		f.execute(t, cmd)

		rec := f.undo(t, "", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, codeNotUndoable, decodeError(t, rec).Code)
		assert.Equal(t, 1, f.engine.HistorySize())
	})

	t.Run("stale state", func(t *testing.T) {
		f := newFixture(t)
		id := f.seed(t, domain.StatusPending, domain.PaymentUnpaid)
		f.execute(t, commands.NewConfirmBooking(id))

		// изменение бронирования в обход движка
		b, err := f.repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		b.Status = domain.StatusInProgress
		_, err = f.repo.Save(context.Background(), b)
		require.NoError(t, err)

		rec := f.undo(t, "", "")

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, codeStaleState, decodeError(t, rec).Code)
		assert.Equal(t, 0, f.engine.HistorySize())
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newFixture(t)

		rec := f.undo(t, `{"actor":`, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, handlers.CodeBadRequest, decodeError(t, rec).Code)
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()
	var resp handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}
