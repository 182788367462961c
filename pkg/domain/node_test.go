package domain_test

import (
	"testing"

	"github.com/aretw0/valence/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_CloneIsIndependent(t *testing.T) {
	w := 120.0
	original := domain.Node{
		ID:       "a",
		Measured: &domain.Size{Width: 10, Height: 20},
		Width:    &w,
		Data: map[string]any{
			"title": "hello",
			"meta":  map[string]any{"tags": []any{"x", "y"}},
		},
	}

	cloned := original.Clone()
	cloned.Measured.Width = 99
	*cloned.Width = 1
	cloned.Data["title"] = "changed"
	cloned.Data["meta"].(map[string]any)["tags"].([]any)[0] = "z"

	assert.Equal(t, 10.0, original.Measured.Width)
	assert.Equal(t, 120.0, *original.Width)
	assert.Equal(t, "hello", original.Data["title"])
	assert.Equal(t, "x", original.Data["meta"].(map[string]any)["tags"].([]any)[0])
}

func TestNode_Label(t *testing.T) {
	assert.Equal(t, "node", domain.Node{ID: "a"}.Label())
	assert.Equal(t, "agent", domain.Node{ID: "a", Type: "agent"}.Label())
}

func TestDocument_ConnectedEdges(t *testing.T) {
	doc := domain.Document{
		Nodes: []domain.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []domain.Edge{
			{ID: "e1", Source: "a", Target: "b"},
			{ID: "e2", Source: "b", Target: "c"},
			{ID: "e3", Source: "c", Target: "a"},
		},
	}

	edges := doc.ConnectedEdges("a")
	require.Len(t, edges, 2)
	assert.Equal(t, "e1", edges[0].ID)
	assert.Equal(t, "e3", edges[1].ID)

	assert.Empty(t, doc.ConnectedEdges("missing"))

	n, ok := doc.Node("b")
	assert.True(t, ok)
	assert.Equal(t, "b", n.ID)
}

func TestDocument_CloneNilData(t *testing.T) {
	doc := domain.NewDocument("d1")
	doc.Nodes = append(doc.Nodes, domain.Node{ID: "a"})

	cloned := doc.Clone()
	assert.Nil(t, cloned.Nodes[0].Data)
	assert.Equal(t, "d1", cloned.ID)
}
