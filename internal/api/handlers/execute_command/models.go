package execute_command

import (
	"encoding/json"

	"github.com/m04kA/SMC-BookingLifecycle/internal/service/bookings/models"
	executeCommand "github.com/m04kA/SMC-BookingLifecycle/internal/usecase/execute_command"
)

// ExecuteCommandRequest HTTP request model
type ExecuteCommandRequest struct {
	Command string          `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// StateResponse пара статусов бронирования
type StateResponse struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

// OutcomeResponse результат выполнения команды
type OutcomeResponse struct {
	Command      string                  `json:"command"`
	BookingID    int64                   `json:"bookingId"`
	From         StateResponse           `json:"from"`
	To           StateResponse           `json:"to"`
	Event        string                  `json:"event"`
	EventEmitted bool                    `json:"eventEmitted"`
	CanUndo      bool                    `json:"canUndo"`
	HistorySize  int                     `json:"historySize"`
	Booking      *models.BookingResponse `json:"booking"`
}

// ExecuteCommandResponse HTTP response model
type ExecuteCommandResponse struct {
	Success bool             `json:"success"`
	Outcome *OutcomeResponse `json:"outcome"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ExecuteCommandRequest) ToUseCaseRequest(bookingID int64) *executeCommand.Request {
	return &executeCommand.Request{
		BookingID: bookingID,
		Command:   r.Command,
		Payload:   r.Payload,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *executeCommand.Response) *ExecuteCommandResponse {
	return &ExecuteCommandResponse{
		Success: true,
		Outcome: &OutcomeResponse{
			Command:      resp.Command,
			BookingID:    resp.BookingID,
			From:         StateResponse{Status: resp.FromStatus, PaymentStatus: resp.FromPaymentStatus},
			To:           StateResponse{Status: resp.ToStatus, PaymentStatus: resp.ToPaymentStatus},
			Event:        resp.Event,
			EventEmitted: resp.EventEmitted,
			CanUndo:      resp.CanUndo,
			HistorySize:  resp.HistorySize,
			Booking:      resp.Booking,
		},
	}
}
