package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/valence/internal/presentation/graph"
	"github.com/aretw0/valence/pkg/domain"
	"github.com/aretw0/valence/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		doc      domain.Document
		contains []string
	}{
		{
			name: "Node Shapes",
			doc: domain.Document{Nodes: []domain.Node{
				{ID: "n", Type: "note"},
				{ID: "d", Type: "decision"},
				{ID: "t", Type: "task"},
			}},
			contains: []string{`n("n")`, `d{"d"}`, `t["t"]`},
		},
		{
			name: "Title Label",
			doc: domain.Document{Nodes: []domain.Node{
				{ID: "a", Data: map[string]any{"title": `Say "hi"`}},
			}},
			contains: []string{`a["Say 'hi'"]`},
		},
		{
			name: "ID Sanitization",
			doc: domain.Document{Nodes: []domain.Node{
				{ID: "path/to/file.md"},
				{ID: "hyphen-ated"},
			}},
			contains: []string{
				`path_to_file_md["path/to/file.md"]`,
				`hyphen_ated["hyphen-ated"]`,
			},
		},
		{
			name: "Edges",
			doc: domain.Document{
				Nodes: []domain.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
				Edges: []domain.Edge{
					{ID: "ab", Source: "a", Target: "b"},
					{ID: "bc", Source: "b", Target: "c", Label: "then"},
				},
			},
			contains: []string{"a --> b", `b -- "then" --> c`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := graph.GenerateMermaid(tt.doc, nil)
			assert.True(t, strings.HasPrefix(out, "graph LR\n"))
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			assert.NotContains(t, out, "Awareness")
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	doc := domain.Document{Nodes: []domain.Node{{ID: "a"}, {ID: "b"}, {ID: "c-1"}}}
	pairs := geometry.NewPairSet(
		geometry.CreatePairKey("b", "a"),
		geometry.CreatePairKey("a", "c-1"),
	)

	out := graph.GenerateMermaid(doc, &graph.Overlay{Pairs: pairs, Selected: "b"})

	assert.Contains(t, out, "a -.- b")
	assert.Contains(t, out, "a -.- c_1")
	assert.Contains(t, out, "class a,b,c_1 aware;")
	assert.Contains(t, out, "class b selected;")
}

func TestGenerateMermaid_EmptyOverlay(t *testing.T) {
	out := graph.GenerateMermaid(domain.Document{}, &graph.Overlay{})
	assert.Contains(t, out, "classDef aware")
	assert.NotContains(t, out, "-.-")
	assert.NotContains(t, out, "    class ")
}
