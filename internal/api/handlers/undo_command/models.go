package undo_command

import (
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/bookings/models"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/engine"
)

// UndoRequest HTTP request model, тело необязательно
type UndoRequest struct {
	Actor string `json:"actor,omitempty"`
}

// UndoResponse HTTP response model
type UndoResponse struct {
	Success     bool                    `json:"success"`
	Command     string                  `json:"command"`
	BookingID   int64                   `json:"bookingId"`
	Event       string                  `json:"event,omitempty"`
	HistorySize int                     `json:"historySize"`
	Booking     *models.BookingResponse `json:"booking,omitempty"`
}

// FromUndoResult конвертирует результат движка в HTTP response
func FromUndoResult(res *engine.UndoResult, historySize int) *UndoResponse {
	resp := &UndoResponse{
		Success:     true,
		Command:     res.Command,
		BookingID:   res.BookingID,
		HistorySize: historySize,
	}
	if res.Outcome != nil {
		resp.Event = res.Outcome.Event
		resp.Booking = models.FromDomainBooking(res.Outcome.Booking)
	}
	return resp
}
