// Package canvas bundles the editing capabilities a node renderer needs.
//
// A node component never touches the history or the document store directly.
// It receives a Context through context.Context and calls the capability it
// needs; the Canvas implementation records every change in the history.
package canvas

import (
	"context"
	"errors"

	"github.com/aretw0/valence/pkg/domain"
)

// ErrContextMissing is returned when FromContext is called outside an editor.
var ErrContextMissing = errors.New("canvas context missing: component rendered outside an editor")

// Context is the capability bundle handed to node components.
type Context interface {
	DeleteNode(id string)
	DeleteEdge(id string)
	DuplicateNode(id string) (string, bool)
	GetNode(id string) (domain.Node, bool)
	ConnectedEdges(id string) []domain.Edge
	// RecordDataChange records an edit the component already applied.
	RecordDataChange(id string, oldData, newData map[string]any, description string)
	// SetEditing marks an inline edit in progress. Undo and redo are
	// suspended until it is cleared.
	SetEditing(editing bool)
}

type contextKey struct{}

// WithContext returns a copy of ctx carrying c.
func WithContext(ctx context.Context, c Context) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext extracts the bundle stored by WithContext.
func FromContext(ctx context.Context) (Context, error) {
	if c, ok := ctx.Value(contextKey{}).(Context); ok && c != nil {
		return c, nil
	}
	return nil, ErrContextMissing
}
