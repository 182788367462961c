package observability

import (
	"log/slog"

	"github.com/aretw0/valence/pkg/domain"
)

// Hooks builds history hooks that update m and log evictions and
// truncations through logger. Routine changes are already logged by the
// history itself. Either argument may be nil.
func Hooks(m *Metrics, logger *slog.Logger) domain.HistoryHooks {
	return domain.HistoryHooks{
		OnChange: func(e *domain.HistoryEvent) {
			if m != nil {
				m.ObserveHistory(e)
			}
		},
		OnEvict: func(e *domain.HistoryEvent) {
			if m != nil {
				m.Evicted.Add(float64(e.Evicted))
			}
			if logger != nil {
				logger.Info("history full, oldest command evicted", "total", e.Total)
			}
		},
		OnTruncate: func(e *domain.HistoryEvent) {
			if m != nil {
				m.Truncated.Add(float64(e.Truncated))
			}
			if logger != nil {
				logger.Debug("redo branch discarded", "count", e.Truncated, "by", e.Description)
			}
		},
	}
}

// Chain merges several hook sets; each callback runs in order.
func Chain(sets ...domain.HistoryHooks) domain.HistoryHooks {
	var out domain.HistoryHooks
	for _, s := range sets {
		out.OnChange = chain(out.OnChange, s.OnChange)
		out.OnEvict = chain(out.OnEvict, s.OnEvict)
		out.OnTruncate = chain(out.OnTruncate, s.OnTruncate)
	}
	return out
}

func chain(a, b func(*domain.HistoryEvent)) func(*domain.HistoryEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *domain.HistoryEvent) {
		a(e)
		b(e)
	}
}
