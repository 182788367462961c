package tui_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/aretw0/valence/internal/presentation/tui"
	"github.com/aretw0/valence/pkg/domain"
	"github.com/aretw0/valence/pkg/geometry"
	"github.com/aretw0/valence/pkg/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryReport(t *testing.T) {
	out := tui.HistoryReport(history.Stats{
		Total:        3,
		Index:        1,
		MaxSize:      100,
		Descriptions: []string{"Move node", "Delete a|b", "Add task"},
	})

	assert.Contains(t, out, "3 of 100 commands, cursor at 1.")
	assert.Contains(t, out, "| 0 | Move node | applied |")
	assert.Contains(t, out, `| 1 | Delete a\|b | **current** |`)
	assert.Contains(t, out, "| 2 | Add task | undone |")

	assert.Contains(t, tui.HistoryReport(history.Stats{Index: -1, MaxSize: 100}), "_Empty._")
}

func TestOverlapReport(t *testing.T) {
	doc := domain.Document{ID: "board", Nodes: []domain.Node{{ID: "a"}, {ID: "b"}}}

	out := tui.OverlapReport(doc, geometry.NewPairSet("a:b"), 50)
	assert.Contains(t, out, "2 nodes, distance 50, 1 overlapping pairs.")
	assert.Contains(t, out, "| a | b |")

	assert.Contains(t, tui.OverlapReport(doc, geometry.NewPairSet(), 50), "_No nodes")
}

func TestNewRenderer_PlainWhenNotTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	render := tui.NewRenderer(f)
	out, err := render("# Title")
	require.NoError(t, err)
	assert.Equal(t, "# Title", out)

	out, err = tui.NewRenderer(nil)("x")
	require.NoError(t, err)
	assert.Equal(t, "x", out)
}

func TestNewStyledRenderer(t *testing.T) {
	render, err := tui.NewStyledRenderer("notty")
	require.NoError(t, err)

	out, err := render("# Title")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), `\_/`)
	assert.Contains(t, tui.Status(&buf, true, "ok"), "ok")
}
