package cancel_booking

import (
	"encoding/json"

	"github.com/m04kA/SMC-BookingLifecycle/internal/service/bookings/models"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/commands"
	executeCommand "github.com/m04kA/SMC-BookingLifecycle/internal/usecase/execute_command"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Success     bool                    `json:"success"`
	Command     string                  `json:"command"`
	Event       string                  `json:"event"`
	HistorySize int                     `json:"historySize"`
	Booking     *models.BookingResponse `json:"booking"`
}

// ToUseCaseRequest конвертирует HTTP request в команду CancelBooking
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID int64) (*executeCommand.Request, error) {
	payload := map[string]string{}
	if r.CancellationReason != nil {
		payload[commands.PayloadReason] = *r.CancellationReason
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &executeCommand.Request{
		BookingID: bookingID,
		Command:   commands.NameCancelBooking,
		Payload:   raw,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *executeCommand.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		Success:     true,
		Command:     resp.Command,
		Event:       resp.Event,
		HistorySize: resp.HistorySize,
		Booking:     resp.Booking,
	}
}
