package command

import "github.com/aretw0/valence/pkg/domain"

// AddEdge adds a connection.
type AddEdge struct {
	Target Target
	Edge   domain.Edge
}

// NewAddEdge creates a command that adds edge.
func NewAddEdge(target Target, edge domain.Edge) *AddEdge {
	return &AddEdge{Target: target, Edge: edge}
}

func (c *AddEdge) Kind() Kind { return KindAddEdge }

func (c *AddEdge) Description() string { return "Add connection" }

func (c *AddEdge) Execute() {
	c.Target.UpdateEdges(func(edges []domain.Edge) []domain.Edge {
		return upsertEdges(edges, c.Edge)
	})
}

func (c *AddEdge) Undo() {
	c.Target.UpdateEdges(func(edges []domain.Edge) []domain.Edge {
		return removeEdge(edges, c.Edge.ID)
	})
}

// DeleteEdge removes a connection.
type DeleteEdge struct {
	Target Target
	Edge   domain.Edge
}

// NewDeleteEdge creates a command that deletes edge.
func NewDeleteEdge(target Target, edge domain.Edge) *DeleteEdge {
	return &DeleteEdge{Target: target, Edge: edge}
}

func (c *DeleteEdge) Kind() Kind { return KindDeleteEdge }

func (c *DeleteEdge) Description() string { return "Delete connection" }

func (c *DeleteEdge) Execute() {
	c.Target.UpdateEdges(func(edges []domain.Edge) []domain.Edge {
		return removeEdge(edges, c.Edge.ID)
	})
}

func (c *DeleteEdge) Undo() {
	c.Target.UpdateEdges(func(edges []domain.Edge) []domain.Edge {
		return upsertEdges(edges, c.Edge)
	})
}
