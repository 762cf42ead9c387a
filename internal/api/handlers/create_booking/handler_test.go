package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/infra/storage/memory"
	createBooking "github.com/m04kA/SMC-BookingLifecycle/internal/usecase/create_booking"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/logger"
)

type nopSink struct{}

func (nopSink) Emit(context.Context, domain.LifecycleEvent) error { return nil }

type failingRepo struct{}

func (failingRepo) Create(context.Context, *domain.Booking) (*domain.Booking, error) {
	return nil, fmt.Errorf("connection refused")
}

func serve(t *testing.T, repo createBooking.BookingRepository, body string) *httptest.ResponseRecorder {
	t.Helper()
	log := logger.NewNop()
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings",
		NewHandler(createBooking.NewUseCase(repo, nopSink{}, log), log).Handle).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body)))
	return rec
}

func body(scheduledAt string, amount int64) string {
	return fmt.Sprintf(`{"requesterId":1,"providerId":2,"serviceId":3,"serviceName":"Yoga class",`+
		`"scheduledAt":%q,"durationMinutes":60,"totalAmount":%d,"currency":"EUR"}`, scheduledAt, amount)
}

func TestHandle_Created(t *testing.T) {
	repo := memory.NewRepository()
	scheduledAt := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)

	rec := serve(t, repo, body(scheduledAt.Format(time.RFC3339), 2500))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.True(t, strings.HasPrefix(resp.ReservationNumber, domain.ReservationNumberPrefix+"-"))
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "unpaid", resp.PaymentStatus)
	assert.Equal(t, scheduledAt.Format(time.RFC3339), resp.ScheduledAt)
	assert.Equal(t, 1, repo.Len())
}

func TestHandle_Errors(t *testing.T) {
	future := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)

	tests := []struct {
		name       string
		repo       createBooking.BookingRepository
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed body",
			repo:       memory.NewRepository(),
			body:       `{"requesterId":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   handlers.CodeBadRequest,
		},
		{
			name:       "bad scheduledAt format",
			repo:       memory.NewRepository(),
			body:       body("20.10.2026 14:00", 2500),
			wantStatus: http.StatusBadRequest,
			wantCode:   handlers.CodeBadRequest,
		},
		{
			name:       "negative amount",
			repo:       memory.NewRepository(),
			body:       body(future, -1),
			wantStatus: http.StatusBadRequest,
			wantCode:   handlers.CodeBadRequest,
		},
		{
			name:       "in the past",
			repo:       memory.NewRepository(),
			body:       body(time.Now().Add(-time.Hour).UTC().Format(time.RFC3339), 2500),
			wantStatus: http.StatusBadRequest,
			wantCode:   handlers.CodeBadRequest,
		},
		{
			name:       "too far in future",
			repo:       memory.NewRepository(),
			body:       body(time.Now().AddDate(2, 0, 0).UTC().Format(time.RFC3339), 2500),
			wantStatus: http.StatusBadRequest,
			wantCode:   handlers.CodeBadRequest,
		},
		{
			name:       "storage failure",
			repo:       failingRepo{},
			body:       body(future, 2500),
			wantStatus: http.StatusInternalServerError,
			wantCode:   handlers.CodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, tt.repo, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}
