package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/filestorage/internal/metadata"
	"github.com/rise-and-shine/filestorage/internal/storage"
)

func TestReconciler_Reconcile(t *testing.T) {
	ctx := context.Background()
	clock := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := metadata.NewMemStore(metadata.WithClock(clock.Now))
	r := storage.NewReconciler(store)

	t.Run("same pair keeps its id", func(t *testing.T) {
		id1, err := r.Reconcile(ctx, "docs", "a.txt", 10)
		require.NoError(t, err)
		first, err := store.GetFile(ctx, id1)
		require.NoError(t, err)

		id2, err := r.Reconcile(ctx, "docs", "a.txt", 25)
		require.NoError(t, err)
		second, err := store.GetFile(ctx, id2)
		require.NoError(t, err)

		assert.Equal(t, id1, id2)
		assert.Equal(t, int64(25), second.FileSize)
		assert.Equal(t, first.CreatedAt, second.CreatedAt)
		assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
	})

	t.Run("empty directory means root", func(t *testing.T) {
		id, err := r.Reconcile(ctx, "", "root.txt", 1)
		require.NoError(t, err)

		rec, err := store.GetFile(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, metadata.RootDir, rec.DirName)
	})

	t.Run("new directory is created", func(t *testing.T) {
		id, err := r.Reconcile(ctx, "fresh", "a.txt", 3)
		require.NoError(t, err)

		recs, err := store.TopFiles(ctx, "fresh", storage.TopFilesLimit)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, id, recs[0].ID)
	})

	t.Run("zero bytes is a valid size", func(t *testing.T) {
		_, err := r.Reconcile(ctx, "docs", "empty.txt", 0)
		require.NoError(t, err)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := r.Reconcile(ctx, "docs", "", 1)
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, storage.CodeInvalidFileName))

		_, err = r.Reconcile(ctx, "docs", "a.txt", -1)
		require.Error(t, err)
	})
}
