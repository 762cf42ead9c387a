package execute_command

import (
	"encoding/json"

	"github.com/m04kA/SMC-BookingLifecycle/internal/service/bookings/models"
)

// Request запрос на выполнение команды
type Request struct {
	BookingID int64
	Command   string
	Payload   json.RawMessage
}

// Response результат выполнения команды
type Response struct {
	Command           string
	BookingID         int64
	FromStatus        string
	FromPaymentStatus string
	ToStatus          string
	ToPaymentStatus   string
	Event             string
	EventEmitted      bool
	CanUndo           bool
	HistorySize       int
	Booking           *models.BookingResponse
}
