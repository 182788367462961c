package geometry

import "github.com/aretw0/valence/pkg/domain"

// BoundingBox is an axis-aligned rectangle in canvas coordinates.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (b BoundingBox) Right() float64 { return b.X + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b BoundingBox) Bottom() float64 { return b.Y + b.Height }

// NodeSize resolves the size used for a node: measured first, then declared,
// then the 200x100 default. Each dimension falls back on its own, and a zero
// measured dimension counts as not measured.
func NodeSize(n domain.Node) (width, height float64) {
	width, height = domain.DefaultNodeWidth, domain.DefaultNodeHeight

	switch {
	case n.Measured != nil && n.Measured.Width != 0:
		width = n.Measured.Width
	case n.Width != nil:
		width = *n.Width
	}

	switch {
	case n.Measured != nil && n.Measured.Height != 0:
		height = n.Measured.Height
	case n.Height != nil:
		height = *n.Height
	}

	return width, height
}

// AwarenessBounds returns the node's bounds expanded by distance on every side.
//
// distance must be >= 0. A negative distance yields an inverted box; it is not validated.
func AwarenessBounds(n domain.Node, distance float64) BoundingBox {
	width, height := NodeSize(n)
	return BoundingBox{
		X:      n.Position.X - distance,
		Y:      n.Position.Y - distance,
		Width:  width + distance*2,
		Height: height + distance*2,
	}
}

// BoxesOverlap reports whether two boxes intersect. Touching edges overlap.
func BoxesOverlap(a, b BoundingBox) bool {
	return !(a.Right() < b.X ||
		b.Right() < a.X ||
		a.Bottom() < b.Y ||
		b.Bottom() < a.Y)
}

// FindOverlappingPairs returns the key of every unordered node pair whose
// awareness zones overlap.
func FindOverlappingPairs(nodes []domain.Node, distance float64) PairSet {
	pairs := NewPairSet()

	bounds := make([]BoundingBox, len(nodes))
	for i, n := range nodes {
		bounds[i] = AwarenessBounds(n, distance)
	}

	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if BoxesOverlap(bounds[i], bounds[j]) {
				pairs.Add(CreatePairKey(nodes[i].ID, nodes[j].ID))
			}
		}
	}

	return pairs
}

// OverlappingNodes returns the nodes whose awareness zones overlap the zone of nodeID,
// in input order. It returns an empty slice when nodeID is not in nodes.
func OverlappingNodes(nodeID string, nodes []domain.Node, distance float64) []domain.Node {
	out := []domain.Node{}

	var target *domain.Node
	for i := range nodes {
		if nodes[i].ID == nodeID {
			target = &nodes[i]
			break
		}
	}
	if target == nil {
		return out
	}

	targetBounds := AwarenessBounds(*target, distance)
	for _, n := range nodes {
		if n.ID == nodeID {
			continue
		}
		if BoxesOverlap(targetBounds, AwarenessBounds(n, distance)) {
			out = append(out, n)
		}
	}
	return out
}
