package ports

import (
	"context"

	"github.com/aretw0/valence/pkg/domain"
)

// DocumentStore defines the interface for persisting graph documents.
// The undo history is never persisted; only the current document is.
type DocumentStore interface {
	// Save persists the document under id, replacing any previous version.
	Save(ctx context.Context, id string, doc domain.Document) error

	// Load retrieves the document stored under id.
	// Returns domain.ErrDocumentNotFound if it does not exist.
	Load(ctx context.Context, id string) (domain.Document, error)

	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all stored documents.
	List(ctx context.Context) ([]string, error)
}
