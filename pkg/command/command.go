package command

import "github.com/aretw0/valence/pkg/domain"

// Kind identifies a command variant.
type Kind string

const (
	KindMoveNode       Kind = "move_node"
	KindUpdateNodeData Kind = "update_node_data"
	KindAddNode        Kind = "add_node"
	KindDeleteNode     Kind = "delete_node"
	KindAddEdge        Kind = "add_edge"
	KindDeleteEdge     Kind = "delete_edge"
	KindBatch          Kind = "batch"
	KindFunc           Kind = "func"
)

// Command is a reversible mutation.
type Command interface {
	// Execute applies the mutation. It is also used for redo.
	Execute()
	// Undo reverses Execute.
	Undo()
	// Description is a human-readable label, e.g. for an "Undo Move node" menu entry.
	Description() string
}

// Target applies transforms to the canonical node and edge collections.
// Transforms must return a new slice rather than modifying their argument.
type Target interface {
	UpdateNodes(fn func([]domain.Node) []domain.Node)
	UpdateEdges(fn func([]domain.Edge) []domain.Edge)
}

// Funcs adapts two update callbacks into a Target. A nil callback ignores updates.
type Funcs struct {
	Nodes func(fn func([]domain.Node) []domain.Node)
	Edges func(fn func([]domain.Edge) []domain.Edge)
}

// UpdateNodes implements Target.
func (f Funcs) UpdateNodes(fn func([]domain.Node) []domain.Node) {
	if f.Nodes != nil {
		f.Nodes(fn)
	}
}

// UpdateEdges implements Target.
func (f Funcs) UpdateEdges(fn func([]domain.Edge) []domain.Edge) {
	if f.Edges != nil {
		f.Edges(fn)
	}
}

// KindOf returns the variant of cmd, or KindFunc for foreign implementations.
func KindOf(cmd Command) Kind {
	if k, ok := cmd.(interface{ Kind() Kind }); ok {
		return k.Kind()
	}
	return KindFunc
}

// Func is a command built from two closures.
type Func struct {
	Do      func()
	Reverse func()
	Label   string
}

// NewFunc creates a closure-based command. Nil closures are no-ops.
func NewFunc(description string, do, reverse func()) *Func {
	return &Func{Do: do, Reverse: reverse, Label: description}
}

func (c *Func) Kind() Kind { return KindFunc }

func (c *Func) Description() string { return c.Label }

func (c *Func) Execute() {
	if c.Do != nil {
		c.Do()
	}
}

func (c *Func) Undo() {
	if c.Reverse != nil {
		c.Reverse()
	}
}
