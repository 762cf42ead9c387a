package undo_command

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/commands"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/engine"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/reqctx"
)

const (
	codeNothingToUndo          = "NOTHING_TO_UNDO"
	codeNotUndoable            = "NOT_UNDOABLE"
	codeStaleState             = "STALE_STATE"
	codeConcurrentModification = "CONCURRENT_MODIFICATION"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgNothingToUndo          = "нет команд для отмены"
	msgNotUndoable            = "последнюю команду нельзя отменить"
	msgStaleState             = "бронирование изменилось после выполнения команды, отмена невозможна"
	msgConcurrentModification = "бронирование изменено параллельно, отмена невозможна"
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

// Handle POST /api/v1/commands/undo
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UndoRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("POST /commands/undo - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// инициатор из тела запроса имеет приоритет над X-User-ID
	actor := strings.TrimSpace(req.Actor)
	if actor == "" {
		actor = reqctx.Actor(r.Context())
	}

	result, err := h.engine.Undo(r.Context(), actor)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrNothingToUndo):
			h.logger.Warn("POST /commands/undo - Nothing to undo: actor=%q", actor)
			handlers.RespondErrorCode(w, http.StatusBadRequest, codeNothingToUndo, msgNothingToUndo)

		case errors.Is(err, engine.ErrNotUndoable):
			h.logger.Warn("POST /commands/undo - Not undoable: actor=%q, error=%v", actor, err)
			handlers.RespondErrorCode(w, http.StatusBadRequest, codeNotUndoable, msgNotUndoable)

		case errors.Is(err, commands.ErrStaleState):
			h.logger.Warn("POST /commands/undo - Stale state: actor=%q, error=%v", actor, err)
			handlers.RespondErrorCode(w, http.StatusConflict, codeStaleState, msgStaleState)

		case errors.Is(err, commands.ErrConcurrentModification):
			h.logger.Warn("POST /commands/undo - Concurrent modification: actor=%q, error=%v", actor, err)
			handlers.RespondErrorCode(w, http.StatusConflict, codeConcurrentModification, msgConcurrentModification)

		default:
			h.logger.Error("POST /commands/undo - Failed to undo: actor=%q, request_id=%s, error=%v",
				actor, reqctx.RequestID(r.Context()), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /commands/undo - Command undone: command=%s, booking_id=%d, actor=%q",
		result.Command, result.BookingID, actor)
	handlers.RespondJSON(w, http.StatusOK, FromUndoResult(result, h.engine.HistorySize()))
}
