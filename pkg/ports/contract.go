package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentStoreContract runs a suite of tests to verify that a
// DocumentStore implementation adheres to the interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	name := "contract-robot-" + time.Now().Format("20060102150405")
	urdf := []byte(`<?xml version="1.0"?>` + "\n" + `<robot name="contract"/>` + "\n")

	t.Run("Save and Load", func(t *testing.T) {
		doc := &domain.Document{
			Name:      name,
			URDF:      urdf,
			Source:    []byte("robot: contract\nlinks: [{name: base}]\n"),
			Summary:   "1 link",
			UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}
		require.NoError(t, store.Save(ctx, doc), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, name, loaded.Name)
		assert.Equal(t, urdf, loaded.URDF)
		assert.Equal(t, doc.Source, loaded.Source)
		assert.Equal(t, "1 link", loaded.Summary)
		assert.True(t, doc.UpdatedAt.Equal(loaded.UpdatedAt), "UpdatedAt should survive a round trip")

		// The store must not alias the caller's buffers.
		doc.URDF[0] = 'X'
		again, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, byte('<'), again.URDF[0])
	})

	t.Run("Save Replaces", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, &domain.Document{Name: name, URDF: []byte("v2")}))
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), loaded.URDF)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, &domain.Document{Name: name, URDF: urdf}))
		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound, "Load after Delete should return ErrDocumentNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-b"
		id2 := name + "-a"
		require.NoError(t, store.Save(ctx, &domain.Document{Name: id1, URDF: urdf}))
		require.NoError(t, store.Save(ctx, &domain.Document{Name: id2, URDF: urdf}))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsNonDecreasing(t, names)
	})
}
