package domain

// Position is a point in canvas coordinates.
type Position struct {
	X float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y float64 `json:"y" yaml:"y" mapstructure:"y"`
}

// Size is a width/height pair in canvas units.
type Size struct {
	Width  float64 `json:"width" yaml:"width" mapstructure:"width"`
	Height float64 `json:"height" yaml:"height" mapstructure:"height"`
}

// Node represents a box on the canvas.
//
// Measured holds the size reported by the renderer, Width and Height the size
// declared by the author. Either may be absent.
type Node struct {
	ID       string         `json:"id" yaml:"id" mapstructure:"id"`
	Type     string         `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type"`
	Position Position       `json:"position" yaml:"position" mapstructure:"position"`
	Measured *Size          `json:"measured,omitempty" yaml:"measured,omitempty" mapstructure:"measured"`
	Width    *float64       `json:"width,omitempty" yaml:"width,omitempty" mapstructure:"width"`
	Height   *float64       `json:"height,omitempty" yaml:"height,omitempty" mapstructure:"height"`
	Data     map[string]any `json:"data,omitempty" yaml:"data,omitempty" mapstructure:"data"`
}

// Label returns the node type, or "node" when the type is empty.
func (n Node) Label() string {
	if n.Type == "" {
		return "node"
	}
	return n.Type
}

// Clone returns a copy of the node that shares no mutable state with n.
func (n Node) Clone() Node {
	out := n
	if n.Measured != nil {
		m := *n.Measured
		out.Measured = &m
	}
	if n.Width != nil {
		w := *n.Width
		out.Width = &w
	}
	if n.Height != nil {
		h := *n.Height
		out.Height = &h
	}
	out.Data = CloneData(n.Data)
	return out
}

// Edge connects two nodes.
type Edge struct {
	ID     string `json:"id" yaml:"id" mapstructure:"id"`
	Source string `json:"source" yaml:"source" mapstructure:"source"`
	Target string `json:"target" yaml:"target" mapstructure:"target"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
}

// Touches reports whether the edge starts or ends at nodeID.
func (e Edge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}

// CloneData deep-copies a node data map. Nested maps and slices are copied,
// other values are shared. A nil map stays nil.
func CloneData(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneData(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
