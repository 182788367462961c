package command

import (
	"slices"

	"github.com/aretw0/valence/pkg/domain"
)

// mapNode returns a copy of nodes with fn applied to the node matching id.
func mapNode(nodes []domain.Node, id string, fn func(domain.Node) domain.Node) []domain.Node {
	out := make([]domain.Node, len(nodes))
	for i, n := range nodes {
		if n.ID == id {
			n = fn(n)
		}
		out[i] = n
	}
	return out
}

// upsertNode appends node, or replaces an existing node with the same id.
func upsertNode(nodes []domain.Node, node domain.Node) []domain.Node {
	if i := slices.IndexFunc(nodes, func(n domain.Node) bool { return n.ID == node.ID }); i >= 0 {
		out := slices.Clone(nodes)
		out[i] = node.Clone()
		return out
	}
	return append(slices.Clone(nodes), node.Clone())
}

func removeNode(nodes []domain.Node, id string) []domain.Node {
	return slices.DeleteFunc(slices.Clone(nodes), func(n domain.Node) bool { return n.ID == id })
}

// upsertEdges appends each edge whose id is absent and replaces those already present.
func upsertEdges(edges []domain.Edge, add ...domain.Edge) []domain.Edge {
	out := slices.Clone(edges)
	for _, e := range add {
		if i := slices.IndexFunc(out, func(x domain.Edge) bool { return x.ID == e.ID }); i >= 0 {
			out[i] = e
			continue
		}
		out = append(out, e)
	}
	return out
}

func removeEdge(edges []domain.Edge, id string) []domain.Edge {
	return slices.DeleteFunc(slices.Clone(edges), func(e domain.Edge) bool { return e.ID == id })
}

func removeTouching(edges []domain.Edge, nodeID string) []domain.Edge {
	return slices.DeleteFunc(slices.Clone(edges), func(e domain.Edge) bool { return e.Touches(nodeID) })
}

// mergeData overlays patch onto data without modifying either map.
func mergeData(data, patch map[string]any) map[string]any {
	out := domain.CloneData(data)
	if out == nil {
		out = make(map[string]any, len(patch))
	}
	for k, v := range domain.CloneData(patch) {
		out[k] = v
	}
	return out
}
