package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/valence/pkg/domain"
	"github.com/aretw0/valence/pkg/geometry"
)

// Overlay contains editor state to visualize on the graph.
type Overlay struct {
	// Pairs are drawn as dotted undirected links between nodes that are near each other.
	Pairs geometry.PairSet
	// Selected is highlighted.
	Selected string
}

// GenerateMermaid produces a Mermaid flowchart for a document.
// Shapes follow the node type:
// - note: (Rounded)
// - decision: {Rhombus}
// - default: [Rectangle]
// Labels use the "title" data field when present, otherwise the id.
func GenerateMermaid(doc domain.Document, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, node := range doc.Nodes {
		opener, closer := "[", "]"
		switch node.Type {
		case "note":
			opener, closer = "(", ")"
		case "decision":
			opener, closer = "{", "}"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(node.ID), opener, escape(label(node)), closer)
	}

	for _, e := range doc.Edges {
		arrow := "-->"
		if e.Label != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", escape(e.Label))
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeMermaidID(e.Source), arrow, sanitizeMermaidID(e.Target))
	}

	if overlay == nil {
		return sb.String()
	}

	sb.WriteString("\n    %% Awareness\n")
	sb.WriteString("    classDef aware fill:#e1f5fe,stroke:#01579b,stroke-dasharray:4 2,color:#000;\n")
	sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

	aware := make(map[string]bool)
	var order []string
	for _, p := range overlay.Pairs.Pairs() {
		fmt.Fprintf(&sb, "    %s -.- %s\n", sanitizeMermaidID(p.A), sanitizeMermaidID(p.B))
		for _, id := range []string{p.A, p.B} {
			if !aware[id] {
				aware[id] = true
				order = append(order, sanitizeMermaidID(id))
			}
		}
	}
	if len(order) > 0 {
		fmt.Fprintf(&sb, "    class %s aware;\n", strings.Join(order, ","))
	}

	if overlay.Selected != "" {
		fmt.Fprintf(&sb, "    class %s selected;\n", sanitizeMermaidID(overlay.Selected))
	}

	return sb.String()
}

func label(n domain.Node) string {
	if title, ok := n.Data["title"].(string); ok && title != "" {
		return title
	}
	return n.ID
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
