package execute_command

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/commands"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/engine"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/lifecycle"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/logger"
)

type utcClock struct{}

func (utcClock) Now() time.Time { return time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC) }

func setup(t *testing.T) (*UseCase, *memory.Repository, int64) {
	t.Helper()
	repo := memory.NewRepository()
	b, err := repo.Create(context.Background(), &domain.Booking{
		ReservationNumber: "BK-20261015-AAAA0001",
		RequesterID:       1,
		Status:            domain.StatusPending,
		PaymentStatus:     domain.PaymentUnpaid,
	})
	require.NoError(t, err)

	eng := engine.New(commands.Env{Repository: repo, Clock: utcClock{}}, engine.Config{}, logger.NewNop(), nil)
	return NewUseCase(commands.NewDefaultRegistry(), eng, logger.NewNop()), repo, b.ID
}

func TestExecute_Success(t *testing.T) {
	uc, _, id := setup(t)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: id,
		Command:   commands.NameMarkPaid,
		Payload:   json.RawMessage(`{"paymentReference":"pay_9"}`),
	})
	require.NoError(t, err)

	assert.Equal(t, commands.NameMarkPaid, resp.Command)
	assert.Equal(t, "unpaid", resp.FromPaymentStatus)
	assert.Equal(t, "paid", resp.ToPaymentStatus)
	assert.Equal(t, "pending", resp.ToStatus)
	assert.Equal(t, lifecycle.DomainPaymentReceived, resp.Event)
	assert.False(t, resp.EventEmitted, "no sink configured")
	assert.True(t, resp.CanUndo)
	assert.Equal(t, 1, resp.HistorySize)
	require.NotNil(t, resp.Booking.PaymentReference)
	assert.Equal(t, "pay_9", *resp.Booking.PaymentReference)
}

func TestExecute_Errors(t *testing.T) {
	uc, _, id := setup(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{BookingID: id, Command: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{BookingID: 0, Command: commands.NameConfirmBooking})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{BookingID: id, Command: "Teleport"})
	assert.ErrorIs(t, err, commands.ErrUnknownCommand)

	_, err = uc.Execute(ctx, &Request{BookingID: id, Command: commands.NameMarkPaid})
	assert.ErrorIs(t, err, commands.ErrInvalidPayload)

	_, err = uc.Execute(ctx, &Request{BookingID: id, Command: commands.NameStartBooking})
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)

	_, err = uc.Execute(ctx, &Request{BookingID: id + 100, Command: commands.NameConfirmBooking})
	assert.ErrorIs(t, err, commands.ErrBookingNotFound)
}
