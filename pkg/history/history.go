package history

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/aretw0/valence/internal/logging"
	"github.com/aretw0/valence/pkg/command"
	"github.com/aretw0/valence/pkg/domain"
)

// Subscriber receives the undo/redo availability after every change.
type Subscriber func(canUndo, canRedo bool)

// Stats is a debug snapshot of the log.
type Stats struct {
	Total        int      `json:"total"`
	Index        int      `json:"index"`
	MaxSize      int      `json:"max_size"`
	Descriptions []string `json:"descriptions"`
}

type subscription struct {
	id int
	fn Subscriber
}

// History is a bounded linear command log with a cursor.
//
// Command Execute and Undo run while the log is locked and must not call
// back into it. Hooks and subscribers run after the lock is released and may
// read or modify the history.
type History struct {
	mu       sync.Mutex
	commands []command.Command
	index    int
	maxSize  int

	subs   []subscription
	nextID int

	hooks  domain.HistoryHooks
	logger *slog.Logger
}

// New creates an empty history (index -1, max size 100 unless configured).
func New(opts ...Option) *History {
	h := &History{
		index:   -1,
		maxSize: domain.DefaultMaxHistory,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute runs cmd and appends it to the log, discarding any redo entries.
func (h *History) Execute(cmd command.Command) {
	if cmd == nil {
		h.logger.Warn("ignoring nil command", "op", domain.ReasonExecute)
		return
	}

	h.mu.Lock()
	cmd.Execute()
	n := h.push(cmd, domain.ReasonExecute)
	h.mu.Unlock()

	n.deliver()
}

// ExecuteWith calls build and executes the command it returns in one
// critical section, so the before-values build captures cannot be changed by
// a concurrent command. build runs under the lock and must not call back into
// the history. A nil command records nothing; build errors are returned as is.
// It returns the executed command, if any.
func (h *History) ExecuteWith(build func() (command.Command, error)) (command.Command, error) {
	h.mu.Lock()
	cmd, err := build()
	if err != nil || cmd == nil {
		h.mu.Unlock()
		return nil, err
	}
	cmd.Execute()
	n := h.push(cmd, domain.ReasonExecute)
	h.mu.Unlock()

	n.deliver()
	return cmd, nil
}

// Record appends cmd without running it. Use it when the mutation already
// happened; cmd.Execute is still used for redo.
func (h *History) Record(cmd command.Command) {
	if cmd == nil {
		h.logger.Warn("ignoring nil command", "op", domain.ReasonRecord)
		return
	}

	h.mu.Lock()
	n := h.push(cmd, domain.ReasonRecord)
	h.mu.Unlock()

	n.deliver()
}

// push truncates, appends and evicts. Caller holds mu.
func (h *History) push(cmd command.Command, reason domain.HistoryReason) notification {
	truncated := len(h.commands) - (h.index + 1)
	clear(h.commands[h.index+1:])
	h.commands = append(h.commands[:h.index+1], cmd)
	h.index++

	evicted := 0
	if len(h.commands) > h.maxSize {
		h.commands = slices.Delete(h.commands, 0, 1)
		h.index--
		evicted = 1
	}

	h.logger.Debug("history push",
		"op", reason,
		"description", cmd.Description(),
		"total", len(h.commands),
		"index", h.index,
		"truncated", truncated,
		"evicted", evicted,
	)

	n := h.pending(reason, cmd.Description())
	n.event.Truncated = truncated
	n.event.Evicted = evicted
	return n
}

// Undo reverts the command at the cursor. It returns false when there is nothing to undo.
func (h *History) Undo() bool {
	h.mu.Lock()
	if h.index < 0 {
		h.mu.Unlock()
		return false
	}

	cmd := h.commands[h.index]
	cmd.Undo()
	h.index--

	h.logger.Debug("history undo", "description", cmd.Description(), "index", h.index)
	n := h.pending(domain.ReasonUndo, cmd.Description())
	h.mu.Unlock()

	n.deliver()
	return true
}

// Redo re-executes the command after the cursor. It returns false when there is nothing to redo.
func (h *History) Redo() bool {
	h.mu.Lock()
	if h.index >= len(h.commands)-1 {
		h.mu.Unlock()
		return false
	}

	h.index++
	cmd := h.commands[h.index]
	cmd.Execute()

	h.logger.Debug("history redo", "description", cmd.Description(), "index", h.index)
	n := h.pending(domain.ReasonRedo, cmd.Description())
	h.mu.Unlock()

	n.deliver()
	return true
}

// Clear empties the log. Cleared commands cannot be undone.
func (h *History) Clear() {
	h.mu.Lock()
	h.commands = nil
	h.index = -1

	h.logger.Debug("history cleared")
	n := h.pending(domain.ReasonClear, "")
	h.mu.Unlock()

	n.deliver()
}

// Subscribe registers fn and calls it once with the current state.
// The returned function removes the subscription; calling it twice is harmless.
func (h *History) Subscribe(fn Subscriber) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs = append(h.subs, subscription{id: id, fn: fn})
	canUndo, canRedo := h.canUndo(), h.canRedo()
	h.mu.Unlock()

	fn(canUndo, canRedo)

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.subs = slices.DeleteFunc(h.subs, func(s subscription) bool { return s.id == id })
	}
}

// CanUndo reports whether Undo would do something.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.canUndo()
}

// CanRedo reports whether Redo would do something.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.canRedo()
}

// UndoDescription returns the description of the command Undo would revert.
func (h *History) UndoDescription() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index < 0 {
		return "", false
	}
	return h.commands[h.index].Description(), true
}

// RedoDescription returns the description of the command Redo would re-execute.
func (h *History) RedoDescription() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index >= len(h.commands)-1 {
		return "", false
	}
	return h.commands[h.index+1].Description(), true
}

// Stats returns a snapshot of the log for debugging.
func (h *History) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	descriptions := make([]string, len(h.commands))
	for i, c := range h.commands {
		descriptions[i] = c.Description()
	}
	return Stats{
		Total:        len(h.commands),
		Index:        h.index,
		MaxSize:      h.maxSize,
		Descriptions: descriptions,
	}
}

func (h *History) canUndo() bool { return h.index >= 0 }

func (h *History) canRedo() bool { return h.index < len(h.commands)-1 }

func (h *History) event(reason domain.HistoryReason, description string) domain.HistoryEvent {
	return domain.HistoryEvent{
		Reason:      reason,
		CanUndo:     h.canUndo(),
		CanRedo:     h.canRedo(),
		Total:       len(h.commands),
		Index:       h.index,
		Description: description,
	}
}

// notification is a change captured under mu and delivered after it is released.
type notification struct {
	event domain.HistoryEvent
	hooks domain.HistoryHooks
	subs  []subscription
}

// pending snapshots the event, hooks and subscribers. Caller holds mu.
func (h *History) pending(reason domain.HistoryReason, description string) notification {
	return notification{
		event: h.event(reason, description),
		hooks: h.hooks,
		subs:  slices.Clone(h.subs),
	}
}

// deliver runs the hooks, then every subscriber in subscription order.
func (n notification) deliver() {
	event := n.event
	if event.Truncated > 0 && n.hooks.OnTruncate != nil {
		n.hooks.OnTruncate(&event)
	}
	if event.Evicted > 0 && n.hooks.OnEvict != nil {
		n.hooks.OnEvict(&event)
	}
	if n.hooks.OnChange != nil {
		n.hooks.OnChange(&event)
	}
	for _, s := range n.subs {
		s.fn(event.CanUndo, event.CanRedo)
	}
}
