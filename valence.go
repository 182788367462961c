package valence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/valence/internal/logging"
	"github.com/aretw0/valence/pkg/canvas"
	"github.com/aretw0/valence/pkg/command"
	"github.com/aretw0/valence/pkg/document"
	"github.com/aretw0/valence/pkg/domain"
	"github.com/aretw0/valence/pkg/geometry"
	"github.com/aretw0/valence/pkg/history"
	"github.com/aretw0/valence/pkg/observability"
	"github.com/aretw0/valence/pkg/ports"
)

// ErrNoStore is returned by Open and Save when no DocumentStore is configured.
var ErrNoStore = errors.New("no document store configured")

// Editor is the high-level entry point for the valence library.
// It owns one document, its undo history and the canvas bundle that edits it.
type Editor struct {
	store   *document.Store
	history *history.History
	canvas  *canvas.Canvas

	docs       ports.DocumentStore
	metrics    *observability.Metrics
	hooks      domain.HistoryHooks
	logger     *slog.Logger
	maxHistory int
	distance   float64
	initial    domain.Document
	canvasOpts []canvas.Option

	mu        sync.Mutex
	lastPairs geometry.PairSet
}

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithMaxHistory bounds the undo log (default 100).
func WithMaxHistory(n int) Option {
	return func(e *Editor) {
		e.maxHistory = n
	}
}

// WithAwarenessDistance sets the padding used for overlap detection (default 50).
func WithAwarenessDistance(d float64) Option {
	return func(e *Editor) {
		e.distance = d
	}
}

// WithStore injects the persistence backend used by Open and Save.
func WithStore(s ports.DocumentStore) Option {
	return func(e *Editor) {
		e.docs = s
	}
}

// WithHistoryHooks registers observability hooks on the history.
func WithHistoryHooks(hooks domain.HistoryHooks) Option {
	return func(e *Editor) {
		e.hooks = hooks
	}
}

// WithMetrics records history and awareness metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Editor) {
		e.metrics = m
	}
}

// WithDocument seeds the editor with doc.
func WithDocument(doc domain.Document) Option {
	return func(e *Editor) {
		e.initial = doc
	}
}

// WithCanvasOptions forwards options to the canvas bundle.
func WithCanvasOptions(opts ...canvas.Option) Option {
	return func(e *Editor) {
		e.canvasOpts = append(e.canvasOpts, opts...)
	}
}

// New creates an editor. Without WithDocument it starts from an empty
// document named "untitled".
func New(opts ...Option) *Editor {
	e := &Editor{
		maxHistory: domain.DefaultMaxHistory,
		distance:   domain.DefaultAwarenessDistance,
		initial:    domain.NewDocument("untitled"),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logging.NewNop()
	}

	hooks := observability.Chain(observability.Hooks(e.metrics, e.logger), e.hooks)

	e.store = document.New(e.initial)
	e.history = history.New(
		history.WithMaxSize(e.maxHistory),
		history.WithLogger(e.logger),
		history.WithHooks(hooks),
	)
	e.canvas = canvas.New(e.store, e.history, append([]canvas.Option{canvas.WithLogger(e.logger)}, e.canvasOpts...)...)
	e.lastPairs = geometry.NewPairSet()
	return e
}

// Canvas returns the capability bundle for node components.
func (e *Editor) Canvas() *canvas.Canvas { return e.canvas }

// History returns the undo log.
func (e *Editor) History() *history.History { return e.history }

// Document returns a snapshot of the current document.
func (e *Editor) Document() domain.Document { return e.store.Snapshot() }

// AwarenessDistance returns the padding used by Overlaps.
func (e *Editor) AwarenessDistance() float64 { return e.distance }

// Apply builds and executes a command spec.
func (e *Editor) Apply(spec command.Spec) error {
	return e.canvas.Apply(spec)
}

// ApplyRaw decodes a generic map (e.g. from JSON) and applies it.
func (e *Editor) ApplyRaw(raw map[string]any) error {
	spec, err := command.DecodeSpec(raw)
	if err != nil {
		return err
	}
	return e.Apply(spec)
}

// Undo reverts the last command. It is a no-op while an inline edit is in progress.
func (e *Editor) Undo() bool { return e.canvas.Undo() }

// Redo re-applies the next command. It is a no-op while an inline edit is in progress.
func (e *Editor) Redo() bool { return e.canvas.Redo() }

// Overlaps returns every node pair whose awareness zones overlap.
func (e *Editor) Overlaps() geometry.PairSet {
	start := time.Now()
	pairs := geometry.FindOverlappingPairs(e.store.Nodes(), e.distance)
	if e.metrics != nil {
		e.metrics.ObserveOverlaps(pairs.Len(), time.Since(start))
	}
	return pairs
}

// OverlappingNodes returns the nodes whose awareness zones overlap nodeID's.
func (e *Editor) OverlappingNodes(nodeID string) []domain.Node {
	return geometry.OverlappingNodes(nodeID, e.store.Nodes(), e.distance)
}

// AwarenessChanges compares the current overlaps with those seen by the
// previous call and returns the pair keys that appeared and disappeared.
func (e *Editor) AwarenessChanges() (entered, left []string) {
	next := e.Overlaps()

	e.mu.Lock()
	defer e.mu.Unlock()
	entered, left = geometry.DiffPairs(e.lastPairs, next)
	e.lastPairs = next
	return entered, left
}

// Open loads a document from the store, replacing the current one.
// The history is cleared: commands refer to the previous document.
func (e *Editor) Open(ctx context.Context, id string) error {
	if e.docs == nil {
		return ErrNoStore
	}
	doc, err := e.docs.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("open %s: %w", id, err)
	}

	e.store.Replace(doc)
	e.history.Clear()

	e.mu.Lock()
	e.lastPairs = geometry.NewPairSet()
	e.mu.Unlock()

	e.logger.Info("document opened", "document", id, "nodes", len(doc.Nodes), "edges", len(doc.Edges))
	return nil
}

// Save persists the current document under its id. The history is not saved.
func (e *Editor) Save(ctx context.Context) error {
	if e.docs == nil {
		return ErrNoStore
	}
	doc := e.store.Snapshot()
	if err := e.docs.Save(ctx, doc.ID, doc); err != nil {
		return fmt.Errorf("save %s: %w", doc.ID, err)
	}
	e.logger.Debug("document saved", "document", doc.ID)
	return nil
}
