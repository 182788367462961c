package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/valence/pkg/domain"
	"github.com/aretw0/valence/pkg/geometry"
	"github.com/aretw0/valence/pkg/history"
)

// HistoryReport formats history stats as markdown. The cursor entry is marked.
func HistoryReport(stats history.Stats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# History\n\n%d of %d commands, cursor at %d.\n\n", stats.Total, stats.MaxSize, stats.Index)
	if stats.Total == 0 {
		sb.WriteString("_Empty._\n")
		return sb.String()
	}

	sb.WriteString("| # | Command | State |\n|---|---|---|\n")
	for i, d := range stats.Descriptions {
		state := "applied"
		switch {
		case i == stats.Index:
			state = "**current**"
		case i > stats.Index:
			state = "undone"
		}
		fmt.Fprintf(&sb, "| %d | %s | %s |\n", i, escapeCell(d), state)
	}
	return sb.String()
}

// OverlapReport formats the awareness pairs of doc as markdown.
func OverlapReport(doc domain.Document, pairs geometry.PairSet, distance float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Awareness: %s\n\n%d nodes, distance %g, %d overlapping pairs.\n\n",
		doc.ID, len(doc.Nodes), distance, pairs.Len())
	if pairs.Len() == 0 {
		sb.WriteString("_No nodes are near each other._\n")
		return sb.String()
	}

	sb.WriteString("| A | B |\n|---|---|\n")
	for _, p := range pairs.Pairs() {
		fmt.Fprintf(&sb, "| %s | %s |\n", escapeCell(p.A), escapeCell(p.B))
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
