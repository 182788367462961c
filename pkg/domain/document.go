package domain

// Document is one graph: the canonical node and edge collections.
type Document struct {
	ID    string `json:"id" yaml:"id"`
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// NewDocument creates an empty document.
func NewDocument(id string) Document {
	return Document{
		ID:    id,
		Nodes: []Node{},
		Edges: []Edge{},
	}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := Document{
		ID:    d.ID,
		Nodes: make([]Node, len(d.Nodes)),
		Edges: make([]Edge, len(d.Edges)),
	}
	for i, n := range d.Nodes {
		out.Nodes[i] = n.Clone()
	}
	copy(out.Edges, d.Edges)
	return out
}

// Node finds a node by id.
func (d Document) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// ConnectedEdges returns the edges that start or end at nodeID, in document order.
func (d Document) ConnectedEdges(nodeID string) []Edge {
	out := []Edge{}
	for _, e := range d.Edges {
		if e.Touches(nodeID) {
			out = append(out, e)
		}
	}
	return out
}
