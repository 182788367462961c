package canvas

import (
	"log/slog"
	"sync/atomic"

	"github.com/aretw0/valence/internal/logging"
	"github.com/aretw0/valence/pkg/command"
	"github.com/aretw0/valence/pkg/document"
	"github.com/aretw0/valence/pkg/domain"
	"github.com/aretw0/valence/pkg/history"
	"github.com/google/uuid"
)

// DuplicateOffset is how far a duplicated node is shifted on both axes.
const DuplicateOffset = 50.0

// Canvas implements Context on top of a document store and a history.
type Canvas struct {
	store   *document.Store
	history *history.History
	logger  *slog.Logger
	newID   func() string
	editing atomic.Bool
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithLogger sets the logger used for ignored operations.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Canvas) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithIDGenerator overrides the id source used by DuplicateNode.
func WithIDGenerator(fn func() string) Option {
	return func(c *Canvas) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// New creates a canvas editing store through hist.
func New(store *document.Store, hist *history.History, opts ...Option) *Canvas {
	c := &Canvas{
		store:   store,
		history: hist,
		logger:  logging.NewNop(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Context = (*Canvas)(nil)

// Store returns the underlying document store.
func (c *Canvas) Store() *document.Store { return c.store }

// History returns the underlying history.
func (c *Canvas) History() *history.History { return c.history }

// DeleteNode removes a node and its connected edges as one undo step.
func (c *Canvas) DeleteNode(id string) {
	_, err := c.history.ExecuteWith(func() (command.Command, error) {
		node, ok := c.store.Node(id)
		if !ok {
			return nil, domain.ErrNodeNotFound
		}
		return command.NewDeleteNode(c.store, node, c.store.ConnectedEdges(id)), nil
	})
	if err != nil {
		c.logger.Debug("delete ignored", "node_id", id, "err", err)
	}
}

// DeleteEdge removes an edge.
func (c *Canvas) DeleteEdge(id string) {
	_, err := c.history.ExecuteWith(func() (command.Command, error) {
		edge, ok := c.store.Edge(id)
		if !ok {
			return nil, domain.ErrEdgeNotFound
		}
		return command.NewDeleteEdge(c.store, edge), nil
	})
	if err != nil {
		c.logger.Debug("delete ignored", "edge_id", id, "err", err)
	}
}

// DuplicateNode copies a node under a fresh id, offset down and right.
// Edges are not copied. It returns the new id.
func (c *Canvas) DuplicateNode(id string) (string, bool) {
	var dupID string
	_, err := c.history.ExecuteWith(func() (command.Command, error) {
		node, ok := c.store.Node(id)
		if !ok {
			return nil, domain.ErrNodeNotFound
		}

		dup := node.Clone()
		dup.ID = c.newID()
		dup.Position.X += DuplicateOffset
		dup.Position.Y += DuplicateOffset
		dupID = dup.ID

		return command.NewBatch("Duplicate "+node.Label(), command.NewAddNode(c.store, dup)), nil
	})
	if err != nil {
		c.logger.Debug("duplicate ignored", "node_id", id, "err", err)
		return "", false
	}
	return dupID, true
}

// GetNode returns a copy of the node.
func (c *Canvas) GetNode(id string) (domain.Node, bool) {
	return c.store.Node(id)
}

// ConnectedEdges returns the edges touching the node.
func (c *Canvas) ConnectedEdges(id string) []domain.Edge {
	return c.store.ConnectedEdges(id)
}

// RecordDataChange records a data edit without re-applying it.
func (c *Canvas) RecordDataChange(id string, oldData, newData map[string]any, description string) {
	if _, ok := c.store.Node(id); !ok {
		c.logger.Debug("record ignored", "node_id", id, "err", domain.ErrNodeNotFound)
		return
	}
	c.history.Record(command.NewUpdateNodeData(c.store, id, oldData, newData, description))
}

// SetEditing toggles inline-edit mode.
func (c *Canvas) SetEditing(editing bool) {
	c.editing.Store(editing)
}

// Editing reports whether an inline edit is in progress.
func (c *Canvas) Editing() bool {
	return c.editing.Load()
}

// Undo reverts the last command unless an inline edit is in progress.
func (c *Canvas) Undo() bool {
	if c.editing.Load() {
		c.logger.Debug("undo suspended while editing")
		return false
	}
	return c.history.Undo()
}

// Redo re-applies the next command unless an inline edit is in progress.
func (c *Canvas) Redo() bool {
	if c.editing.Load() {
		c.logger.Debug("redo suspended while editing")
		return false
	}
	return c.history.Redo()
}

// MoveNode moves a node to pos. Moving to the current position records nothing.
func (c *Canvas) MoveNode(id string, pos domain.Position) bool {
	cmd, err := c.history.ExecuteWith(func() (command.Command, error) {
		node, ok := c.store.Node(id)
		if !ok {
			return nil, domain.ErrNodeNotFound
		}
		if node.Position == pos {
			return nil, nil
		}
		return command.NewMoveNode(c.store, id, node.Position, pos), nil
	})
	if err != nil {
		c.logger.Debug("move ignored", "node_id", id, "err", err)
	}
	return cmd != nil
}

// UpdateNodeData merges patch into a node's data.
func (c *Canvas) UpdateNodeData(id string, patch map[string]any, description string) error {
	return c.Apply(command.Spec{
		Kind:        command.KindUpdateNodeData,
		NodeID:      id,
		Data:        patch,
		Description: description,
	})
}

// AddNode adds a node.
func (c *Canvas) AddNode(node domain.Node) error {
	return c.Apply(command.Spec{Kind: command.KindAddNode, Node: &node})
}

// AddEdge connects two nodes.
func (c *Canvas) AddEdge(edge domain.Edge) error {
	return c.Apply(command.Spec{Kind: command.KindAddEdge, Edge: &edge})
}

// Apply builds spec against the current document and executes it. Building
// and executing happen in one history critical section.
func (c *Canvas) Apply(spec command.Spec) error {
	_, err := c.history.ExecuteWith(func() (command.Command, error) {
		return spec.Build(c.store, c.store)
	})
	return err
}
