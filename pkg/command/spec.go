package command

import (
	"errors"
	"fmt"

	"github.com/aretw0/valence/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// ErrInvalidSpec is returned when a Spec cannot be decoded or is missing fields for its kind.
var ErrInvalidSpec = errors.New("invalid command spec")

// Lookup resolves the current values a command must capture for its inverse.
type Lookup interface {
	Node(id string) (domain.Node, bool)
	Edge(id string) (domain.Edge, bool)
	ConnectedEdges(nodeID string) []domain.Edge
}

// Spec is the serializable form of a command.
//
// Only the fields relevant to Kind are read:
//   - move_node: node_id, position
//   - update_node_data: node_id, data, description
//   - add_node: node
//   - delete_node: node_id
//   - add_edge: edge
//   - delete_edge: edge_id
//   - batch: commands, description
type Spec struct {
	Kind        Kind             `json:"kind" yaml:"kind" mapstructure:"kind"`
	NodeID      string           `json:"node_id,omitempty" yaml:"node_id,omitempty" mapstructure:"node_id"`
	EdgeID      string           `json:"edge_id,omitempty" yaml:"edge_id,omitempty" mapstructure:"edge_id"`
	Position    *domain.Position `json:"position,omitempty" yaml:"position,omitempty" mapstructure:"position"`
	Data        map[string]any   `json:"data,omitempty" yaml:"data,omitempty" mapstructure:"data"`
	Node        *domain.Node     `json:"node,omitempty" yaml:"node,omitempty" mapstructure:"node"`
	Edge        *domain.Edge     `json:"edge,omitempty" yaml:"edge,omitempty" mapstructure:"edge"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Commands    []Spec           `json:"commands,omitempty" yaml:"commands,omitempty" mapstructure:"commands"`
}

// DecodeSpec decodes a generic map (from JSON or YAML) into a Spec.
// Unknown keys are rejected.
func DecodeSpec(raw map[string]any) (Spec, error) {
	var spec Spec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &spec,
		ErrorUnused: true,
	})
	if err != nil {
		return Spec{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Spec{}, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// Validate checks that the fields required by Kind are present.
func (s Spec) Validate() error {
	missing := func(field string) error {
		return fmt.Errorf("%w: %s requires %s", ErrInvalidSpec, s.Kind, field)
	}

	switch s.Kind {
	case KindMoveNode:
		if s.NodeID == "" {
			return missing("node_id")
		}
		if s.Position == nil {
			return missing("position")
		}
	case KindUpdateNodeData:
		if s.NodeID == "" {
			return missing("node_id")
		}
		if len(s.Data) == 0 {
			return missing("data")
		}
	case KindAddNode:
		if s.Node == nil || s.Node.ID == "" {
			return missing("node.id")
		}
	case KindDeleteNode:
		if s.NodeID == "" {
			return missing("node_id")
		}
	case KindAddEdge:
		if s.Edge == nil || s.Edge.ID == "" {
			return missing("edge.id")
		}
	case KindDeleteEdge:
		if s.EdgeID == "" {
			return missing("edge_id")
		}
	case KindBatch:
		if len(s.Commands) == 0 {
			return missing("commands")
		}
		for i, sub := range s.Commands {
			if err := sub.Validate(); err != nil {
				return fmt.Errorf("commands[%d]: %w", i, err)
			}
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidSpec, s.Kind)
	}
	return nil
}

// Build turns the spec into a command bound to target. The before-values
// needed for Undo are read from lookup now, not when the command runs.
//
// Sub-commands of a batch are all resolved against the same lookup state,
// so a batch cannot move a node that an earlier entry of the same batch adds.
func (s Spec) Build(target Target, lookup Lookup) (Command, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	switch s.Kind {
	case KindMoveNode:
		node, ok := lookup.Node(s.NodeID)
		if !ok {
			return nil, fmt.Errorf("move %s: %w", s.NodeID, domain.ErrNodeNotFound)
		}
		return NewMoveNode(target, s.NodeID, node.Position, *s.Position), nil

	case KindUpdateNodeData:
		node, ok := lookup.Node(s.NodeID)
		if !ok {
			return nil, fmt.Errorf("update %s: %w", s.NodeID, domain.ErrNodeNotFound)
		}
		old := make(map[string]any, len(s.Data))
		for k := range s.Data {
			if v, present := node.Data[k]; present {
				old[k] = v
			}
		}
		return NewUpdateNodeData(target, s.NodeID, old, s.Data, s.Description), nil

	case KindAddNode:
		return NewAddNode(target, *s.Node), nil

	case KindDeleteNode:
		node, ok := lookup.Node(s.NodeID)
		if !ok {
			return nil, fmt.Errorf("delete %s: %w", s.NodeID, domain.ErrNodeNotFound)
		}
		return NewDeleteNode(target, node, lookup.ConnectedEdges(s.NodeID)), nil

	case KindAddEdge:
		return NewAddEdge(target, *s.Edge), nil

	case KindDeleteEdge:
		edge, ok := lookup.Edge(s.EdgeID)
		if !ok {
			return nil, fmt.Errorf("delete %s: %w", s.EdgeID, domain.ErrEdgeNotFound)
		}
		return NewDeleteEdge(target, edge), nil

	case KindBatch:
		cmds := make([]Command, 0, len(s.Commands))
		for i, sub := range s.Commands {
			c, err := sub.Build(target, lookup)
			if err != nil {
				return nil, fmt.Errorf("commands[%d]: %w", i, err)
			}
			cmds = append(cmds, c)
		}
		label := s.Description
		if label == "" {
			label = fmt.Sprintf("Batch of %d", len(cmds))
		}
		return NewBatch(label, cmds...), nil
	}

	return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidSpec, s.Kind)
}
