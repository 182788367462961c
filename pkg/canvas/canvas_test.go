package canvas_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aretw0/valence/pkg/canvas"
	"github.com/aretw0/valence/pkg/command"
	"github.com/aretw0/valence/pkg/document"
	"github.com/aretw0/valence/pkg/domain"
	"github.com/aretw0/valence/pkg/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCanvas(t *testing.T, opts ...canvas.Option) *canvas.Canvas {
	t.Helper()
	doc := domain.Document{
		ID: "doc",
		Nodes: []domain.Node{
			{ID: "a", Type: "task", Position: domain.Position{X: 10, Y: 20}, Data: map[string]any{"title": "A"}},
			{ID: "b", Type: "note"},
			{ID: "c"},
		},
		Edges: []domain.Edge{
			{ID: "ab", Source: "a", Target: "b"},
			{ID: "bc", Source: "b", Target: "c"},
		},
	}
	return canvas.New(document.New(doc), history.New(), opts...)
}

func TestFromContext(t *testing.T) {
	_, err := canvas.FromContext(context.Background())
	assert.ErrorIs(t, err, canvas.ErrContextMissing)

	c := newCanvas(t)
	got, err := canvas.FromContext(canvas.WithContext(context.Background(), c))
	require.NoError(t, err)
	assert.Same(t, c, got)
}

func TestCanvas_DeleteNode(t *testing.T) {
	c := newCanvas(t)

	c.DeleteNode("b")

	_, ok := c.GetNode("b")
	assert.False(t, ok)
	assert.Empty(t, c.Store().Edges(), "both edges touch b")

	desc, _ := c.History().UndoDescription()
	assert.Equal(t, "Delete note", desc)

	require.True(t, c.Undo())
	_, ok = c.GetNode("b")
	assert.True(t, ok)
	assert.Len(t, c.ConnectedEdges("b"), 2)
}

func TestCanvas_DeleteEdge(t *testing.T) {
	c := newCanvas(t)

	c.DeleteEdge("ab")
	assert.Len(t, c.Store().Edges(), 1)

	require.True(t, c.Undo())
	assert.Len(t, c.Store().Edges(), 2)
}

func TestCanvas_UnknownIDsAreNoOps(t *testing.T) {
	c := newCanvas(t)

	c.DeleteNode("missing")
	c.DeleteEdge("missing")
	c.RecordDataChange("missing", nil, map[string]any{"x": 1}, "")
	_, ok := c.DuplicateNode("missing")
	assert.False(t, ok)
	assert.False(t, c.MoveNode("missing", domain.Position{X: 1}))

	assert.False(t, c.History().CanUndo())
}

func TestCanvas_DuplicateNode(t *testing.T) {
	c := newCanvas(t, canvas.WithIDGenerator(func() string { return "copy" }))

	id, ok := c.DuplicateNode("a")
	require.True(t, ok)
	assert.Equal(t, "copy", id)

	dup, ok := c.GetNode("copy")
	require.True(t, ok)
	assert.Equal(t, domain.Position{X: 60, Y: 70}, dup.Position)
	assert.Equal(t, "task", dup.Type)
	assert.Equal(t, "A", dup.Data["title"])
	assert.Empty(t, c.ConnectedEdges("copy"), "edges are not duplicated")

	desc, _ := c.History().UndoDescription()
	assert.Equal(t, "Duplicate task", desc)

	require.True(t, c.Undo())
	_, ok = c.GetNode("copy")
	assert.False(t, ok)
}

func TestCanvas_DuplicateUsesFreshIDs(t *testing.T) {
	c := newCanvas(t)

	first, _ := c.DuplicateNode("c")
	second, _ := c.DuplicateNode("c")
	assert.NotEqual(t, first, second)
	assert.NotEqual(t, "c", first)
}

func TestCanvas_RecordDataChange(t *testing.T) {
	c := newCanvas(t)

	// The component applies the edit itself, then records it.
	c.Store().UpdateNodes(func(nodes []domain.Node) []domain.Node {
		for i := range nodes {
			if nodes[i].ID == "a" {
				nodes[i].Data["title"] = "Renamed"
			}
		}
		return nodes
	})
	c.RecordDataChange("a", map[string]any{"title": "A"}, map[string]any{"title": "Renamed"}, "Rename task")

	n, _ := c.GetNode("a")
	assert.Equal(t, "Renamed", n.Data["title"])

	desc, _ := c.History().UndoDescription()
	assert.Equal(t, "Rename task", desc)

	require.True(t, c.Undo())
	n, _ = c.GetNode("a")
	assert.Equal(t, "A", n.Data["title"])

	require.True(t, c.Redo())
	n, _ = c.GetNode("a")
	assert.Equal(t, "Renamed", n.Data["title"])
}

func TestCanvas_EditingSuspendsUndoRedo(t *testing.T) {
	c := newCanvas(t)
	c.DeleteEdge("ab")

	c.SetEditing(true)
	assert.True(t, c.Editing())
	assert.False(t, c.Undo())
	assert.Len(t, c.Store().Edges(), 1)

	c.SetEditing(false)
	assert.True(t, c.Undo())
	c.SetEditing(true)
	assert.False(t, c.Redo())
	c.SetEditing(false)
	assert.True(t, c.Redo())
}

func TestCanvas_MoveNode(t *testing.T) {
	c := newCanvas(t)

	assert.False(t, c.MoveNode("a", domain.Position{X: 10, Y: 20}), "same position")
	assert.True(t, c.MoveNode("a", domain.Position{X: 300, Y: 400}))

	n, _ := c.GetNode("a")
	assert.Equal(t, domain.Position{X: 300, Y: 400}, n.Position)

	require.True(t, c.Undo())
	n, _ = c.GetNode("a")
	assert.Equal(t, domain.Position{X: 10, Y: 20}, n.Position)
}

func TestCanvas_ConcurrentMovesUndoToOrigin(t *testing.T) {
	c := newCanvas(t)

	const movers = 32
	var wg sync.WaitGroup
	for i := 0; i < movers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.MoveNode("a", domain.Position{X: float64(100 + i), Y: float64(200 + i)})
		}()
	}
	wg.Wait()

	assert.Equal(t, movers, c.History().Stats().Total)

	for c.Undo() {
	}
	n, _ := c.GetNode("a")
	assert.Equal(t, domain.Position{X: 10, Y: 20}, n.Position)
	assert.Equal(t, -1, c.History().Stats().Index)
}

func TestCanvas_HelpersAndApply(t *testing.T) {
	c := newCanvas(t)

	require.NoError(t, c.AddNode(domain.Node{ID: "d", Type: "task"}))
	require.NoError(t, c.AddEdge(domain.Edge{ID: "cd", Source: "c", Target: "d"}))
	require.NoError(t, c.UpdateNodeData("d", map[string]any{"done": true}, ""))

	n, _ := c.GetNode("d")
	assert.Equal(t, true, n.Data["done"])
	assert.Equal(t, 3, c.History().Stats().Total)

	err := c.UpdateNodeData("missing", map[string]any{"x": 1}, "")
	assert.True(t, errors.Is(err, domain.ErrNodeNotFound))

	err = c.Apply(command.Spec{Kind: command.KindMoveNode, NodeID: "d"})
	assert.ErrorIs(t, err, command.ErrInvalidSpec)
	assert.Equal(t, 3, c.History().Stats().Total)

	for c.Undo() {
	}
	_, ok := c.GetNode("d")
	assert.False(t, ok)
	assert.Len(t, c.Store().Edges(), 2)
}
