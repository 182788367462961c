package command

import (
	"fmt"

	"github.com/aretw0/valence/pkg/domain"
)

// MoveNode moves a node between two positions.
type MoveNode struct {
	Target Target
	NodeID string
	From   domain.Position
	To     domain.Position
}

// NewMoveNode creates a command that moves nodeID from oldPos to newPos.
func NewMoveNode(target Target, nodeID string, oldPos, newPos domain.Position) *MoveNode {
	return &MoveNode{Target: target, NodeID: nodeID, From: oldPos, To: newPos}
}

func (c *MoveNode) Kind() Kind { return KindMoveNode }

func (c *MoveNode) Description() string { return "Move node" }

func (c *MoveNode) Execute() { c.moveTo(c.To) }

func (c *MoveNode) Undo() { c.moveTo(c.From) }

func (c *MoveNode) moveTo(pos domain.Position) {
	c.Target.UpdateNodes(func(nodes []domain.Node) []domain.Node {
		return mapNode(nodes, c.NodeID, func(n domain.Node) domain.Node {
			n.Position = pos
			return n
		})
	})
}

// UpdateNodeData merges a data patch into a node.
//
// Execute merges New. Undo merges Old back and drops the keys New introduced
// that Old did not have.
type UpdateNodeData struct {
	Target Target
	NodeID string
	Old    map[string]any
	New    map[string]any
	Label  string
}

// NewUpdateNodeData creates a data update command. An empty description defaults to "Update node".
func NewUpdateNodeData(target Target, nodeID string, oldData, newData map[string]any, description string) *UpdateNodeData {
	if description == "" {
		description = "Update node"
	}
	return &UpdateNodeData{
		Target: target,
		NodeID: nodeID,
		Old:    domain.CloneData(oldData),
		New:    domain.CloneData(newData),
		Label:  description,
	}
}

func (c *UpdateNodeData) Kind() Kind { return KindUpdateNodeData }

func (c *UpdateNodeData) Description() string { return c.Label }

func (c *UpdateNodeData) Execute() {
	c.Target.UpdateNodes(func(nodes []domain.Node) []domain.Node {
		return mapNode(nodes, c.NodeID, func(n domain.Node) domain.Node {
			n.Data = mergeData(n.Data, c.New)
			return n
		})
	})
}

func (c *UpdateNodeData) Undo() {
	c.Target.UpdateNodes(func(nodes []domain.Node) []domain.Node {
		return mapNode(nodes, c.NodeID, func(n domain.Node) domain.Node {
			data := mergeData(n.Data, c.Old)
			for k := range c.New {
				if _, existed := c.Old[k]; !existed {
					delete(data, k)
				}
			}
			n.Data = data
			return n
		})
	})
}

// AddNode adds a node to the canvas.
type AddNode struct {
	Target Target
	Node   domain.Node
}

// NewAddNode creates a command that adds node.
func NewAddNode(target Target, node domain.Node) *AddNode {
	return &AddNode{Target: target, Node: node.Clone()}
}

func (c *AddNode) Kind() Kind { return KindAddNode }

func (c *AddNode) Description() string { return fmt.Sprintf("Add %s", c.Node.Label()) }

func (c *AddNode) Execute() {
	c.Target.UpdateNodes(func(nodes []domain.Node) []domain.Node {
		return upsertNode(nodes, c.Node)
	})
}

func (c *AddNode) Undo() {
	c.Target.UpdateNodes(func(nodes []domain.Node) []domain.Node {
		return removeNode(nodes, c.Node.ID)
	})
}

// DeleteNode removes a node together with every edge touching it.
//
// ConnectedEdges is captured when the command is built. Undo restores exactly
// that set, even if the edge collection changed in the meantime.
type DeleteNode struct {
	Target         Target
	Node           domain.Node
	ConnectedEdges []domain.Edge
}

// NewDeleteNode creates a command that deletes node and its connected edges.
func NewDeleteNode(target Target, node domain.Node, connected []domain.Edge) *DeleteNode {
	edges := make([]domain.Edge, len(connected))
	copy(edges, connected)
	return &DeleteNode{Target: target, Node: node.Clone(), ConnectedEdges: edges}
}

func (c *DeleteNode) Kind() Kind { return KindDeleteNode }

func (c *DeleteNode) Description() string { return fmt.Sprintf("Delete %s", c.Node.Label()) }

func (c *DeleteNode) Execute() {
	c.Target.UpdateNodes(func(nodes []domain.Node) []domain.Node {
		return removeNode(nodes, c.Node.ID)
	})
	c.Target.UpdateEdges(func(edges []domain.Edge) []domain.Edge {
		return removeTouching(edges, c.Node.ID)
	})
}

func (c *DeleteNode) Undo() {
	c.Target.UpdateNodes(func(nodes []domain.Node) []domain.Node {
		return upsertNode(nodes, c.Node)
	})
	c.Target.UpdateEdges(func(edges []domain.Edge) []domain.Edge {
		return upsertEdges(edges, c.ConnectedEdges...)
	})
}
