package history

import (
	"log/slog"

	"github.com/aretw0/valence/pkg/domain"
)

// Option configures a History.
type Option func(*History)

// WithMaxSize bounds the number of retained commands. Values below 1 keep the default.
func WithMaxSize(n int) Option {
	return func(h *History) {
		if n >= 1 {
			h.maxSize = n
		}
	}
}

// WithLogger sets a structured logger for history operations.
func WithLogger(logger *slog.Logger) Option {
	return func(h *History) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithHooks registers lifecycle hooks.
func WithHooks(hooks domain.HistoryHooks) Option {
	return func(h *History) {
		h.hooks = hooks
	}
}
