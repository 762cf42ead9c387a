package get_command_history

import (
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/service/commands"
)

// HistoryEntry описание команды журнала
type HistoryEntry struct {
	Name       string            `json:"name"`
	BookingID  int64             `json:"bookingId"`
	Payload    map[string]string `json:"payload"`
	CanUndo    bool              `json:"canUndo"`
	Actor      string            `json:"actor,omitempty"`
	ExecutedAt string            `json:"executedAt"`
}

// HistoryResponse HTTP response model
type HistoryResponse struct {
	Success  bool           `json:"success"`
	Size     int            `json:"size"`
	Capacity int            `json:"capacity"`
	History  []HistoryEntry `json:"history"`
}

// FromSummaries конвертирует журнал движка в HTTP response
func FromSummaries(summaries []commands.Summary, capacity int) *HistoryResponse {
	entries := make([]HistoryEntry, 0, len(summaries))
	for _, s := range summaries {
		payload := map[string]string(s.Payload)
		if payload == nil {
			payload = map[string]string{}
		}
		entries = append(entries, HistoryEntry{
			Name:       s.Name,
			BookingID:  s.BookingID,
			Payload:    payload,
			CanUndo:    s.CanUndo,
			Actor:      s.Actor,
			ExecutedAt: s.ExecutedAt.Format(time.RFC3339),
		})
	}

	return &HistoryResponse{
		Success:  true,
		Size:     len(entries),
		Capacity: capacity,
		History:  entries,
	}
}
