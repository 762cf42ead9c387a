package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/bookings"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/bookings/models"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/logger"
)

func serve(t *testing.T, repo *memory.Repository, path string) *httptest.ResponseRecorder {
	t.Helper()
	log := logger.NewNop()
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}",
		NewHandler(bookings.NewService(repo, log), log).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle(t *testing.T) {
	repo := memory.NewRepository()
	_, err := repo.Create(context.Background(), &domain.Booking{
		ReservationNumber: "BK-20261020-GET00001",
		RequesterID:       1,
		ProviderID:        2,
		ServiceID:         3,
		ServiceName:       "Repair",
		ScheduledAt:       time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC),
		DurationMinutes:   90,
		TotalAmount:       12000,
		Currency:          "USD",
		Status:            domain.StatusConfirmed,
		PaymentStatus:     domain.PaymentPending,
	})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		rec := serve(t, repo, "/api/v1/bookings/1")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.BookingResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "BK-20261020-GET00001", resp.ReservationNumber)
		assert.Equal(t, "confirmed", resp.Status)
		assert.Equal(t, "pending", resp.PaymentStatus)
	})

	t.Run("not found", func(t *testing.T) {
		rec := serve(t, repo, "/api/v1/bookings/42")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := serve(t, repo, "/api/v1/bookings/abc")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-positive id", func(t *testing.T) {
		rec := serve(t, repo, "/api/v1/bookings/0")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
