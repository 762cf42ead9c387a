package engine

import (
	"fmt"
	"sync"

	"github.com/m04kA/SMC-BookingLifecycle/internal/service/commands"
)

// History ограниченный журнал выполненных команд
// Вытеснение - самая старая запись, отмена - самая новая
type History struct {
	mu    sync.Mutex
	max   int
	items []commands.Command
}

// NewHistory создает журнал; max <= 0 - размер по умолчанию
func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultHistorySize
	}
	return &History{max: max, items: make([]commands.Command, 0, max)}
}

// Push добавляет команду и возвращает вытесненную (или nil)
func (h *History) Push(cmd commands.Command) commands.Command {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append(h.items, cmd)
	if len(h.items) <= h.max {
		return nil
	}

	evicted := h.items[0]
	h.items[0] = nil
	h.items = h.items[1:]
	return evicted
}

// PopUndoable снимает последнюю команду, если её можно отменить
// Неотменяемая команда остаётся на месте
func (h *History) PopUndoable() (commands.Command, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.items)
	if n == 0 {
		return nil, ErrNothingToUndo
	}

	last := h.items[n-1]
	if !last.CanUndo() {
		return nil, fmt.Errorf("%w: %s booking=%d", ErrNotUndoable, last.Name(), last.BookingID())
	}

	h.items[n-1] = nil
	h.items = h.items[:n-1]
	return last, nil
}

// Summaries возвращает описания команд от старой к новой
func (h *History) Summaries() []commands.Summary {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]commands.Summary, 0, len(h.items))
	for _, cmd := range h.items {
		out = append(out, cmd.Summary())
	}
	return out
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

func (h *History) Max() int {
	return h.max
}
