package get_command_history

import (
	"net/http"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
)

type Handler struct {
	engine CommandEngine
	logger Logger
}

func NewHandler(engine CommandEngine, logger Logger) *Handler {
	return &Handler{
		engine: engine,
		logger: logger,
	}
}

// Handle GET /api/v1/commands/history
// Только чтение: журнал не меняется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	response := FromSummaries(h.engine.History(), h.engine.HistoryCapacity())

	h.logger.Info("GET /commands/history - History retrieved: size=%d", response.Size)
	handlers.RespondJSON(w, http.StatusOK, response)
}
