package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/valence/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentStoreContract runs a suite of tests to verify that a DocumentStore
// implementation adheres to the defined interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	docID := "contract-doc-" + time.Now().Format("20060102150405")

	sample := func(id string) domain.Document {
		w := 320.0
		return domain.Document{
			ID: id,
			Nodes: []domain.Node{
				{
					ID:       "a",
					Type:     "task",
					Position: domain.Position{X: 10, Y: 20.5},
					Width:    &w,
					Data:     map[string]any{"title": "Write tests", "tags": []any{"x", "y"}},
				},
				{ID: "b", Measured: &domain.Size{Width: 150, Height: 80}},
			},
			Edges: []domain.Edge{{ID: "ab", Source: "a", Target: "b", Label: "next"}},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		doc := sample(docID)
		require.NoError(t, store.Save(ctx, docID, doc))

		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, docID, loaded.ID)
		require.Len(t, loaded.Nodes, 2)
		require.Len(t, loaded.Edges, 1)

		a, ok := loaded.Node("a")
		require.True(t, ok)
		assert.Equal(t, domain.Position{X: 10, Y: 20.5}, a.Position)
		require.NotNil(t, a.Width)
		assert.Equal(t, 320.0, *a.Width)
		assert.Nil(t, a.Height)
		assert.Equal(t, "Write tests", a.Data["title"])
		assert.Len(t, a.Data["tags"], 2)

		b, ok := loaded.Node("b")
		require.True(t, ok)
		require.NotNil(t, b.Measured)
		assert.Equal(t, 150.0, b.Measured.Width)

		assert.Equal(t, doc.Edges, loaded.Edges)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		doc := sample(docID)
		doc.Nodes = doc.Nodes[:1]
		doc.Edges = []domain.Edge{}
		require.NoError(t, store.Save(ctx, docID, doc))

		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err)
		assert.Len(t, loaded.Nodes, 1)
		assert.Empty(t, loaded.Edges)
	})

	t.Run("Load Isolated From Caller", func(t *testing.T) {
		doc := sample(docID)
		require.NoError(t, store.Save(ctx, docID, doc))
		doc.Nodes[0].Data["title"] = "mutated after save"

		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err)
		loaded.Nodes[0].Data["title"] = "mutated after load"

		again, err := store.Load(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, "Write tests", again.Nodes[0].Data["title"])
	})

	t.Run("Save Empty ID", func(t *testing.T) {
		err := store.Save(ctx, "", sample(""))
		assert.ErrorIs(t, err, domain.ErrEmptyDocumentID)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+docID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, docID, sample(docID)))
		require.NoError(t, store.Delete(ctx, docID))

		_, err := store.Load(ctx, docID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound, "Load after Delete should return ErrDocumentNotFound")

		assert.NoError(t, store.Delete(ctx, docID), "deleting twice is harmless")
	})

	t.Run("List", func(t *testing.T) {
		id1 := docID + "-1"
		id2 := docID + "-2"
		require.NoError(t, store.Save(ctx, id1, sample(id1)))
		require.NoError(t, store.Save(ctx, id2, sample(id2)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
