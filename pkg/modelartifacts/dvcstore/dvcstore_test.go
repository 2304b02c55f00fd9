package dvcstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furiosa-ai/model-artifacts/pkg/modelartifacts"
	"github.com/furiosa-ai/model-artifacts/pkg/modelartifacts/dvcstore"
)

func TestDiscover(t *testing.T) {
	t.Run("MarkerInAncestor", func(t *testing.T) {
		repo := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(repo, ".dvc"), 0755))
		nested := filepath.Join(repo, "a", "b", "c")
		require.NoError(t, os.MkdirAll(nested, 0755))

		root, ok := dvcstore.Discover(nested)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(repo, ".dvc", "cache"), root)
	})

	t.Run("MarkerInStartDir", func(t *testing.T) {
		repo := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(repo, ".dvc"), 0755))

		root, ok := dvcstore.Discover(repo)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(repo, ".dvc", "cache"), root)
	})

	t.Run("NoMarker", func(t *testing.T) {
		_, ok := dvcstore.Discover(t.TempDir())
		assert.False(t, ok)
	})

	t.Run("MarkerMustBeDirectory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".dvc"), []byte("not a dir"), 0644))

		_, ok := dvcstore.Discover(dir)
		assert.False(t, ok)
	})
}

func TestStoreGet(t *testing.T) {
	root := t.TempDir()
	body := []byte("stored object bytes")
	object := filepath.Join(root, "ab", "12cd34ab12cd34ab12cd34ab12cd34")
	require.NoError(t, os.MkdirAll(filepath.Dir(object), 0755))
	require.NoError(t, os.WriteFile(object, body, 0644))

	store, err := dvcstore.Open(root)
	require.NoError(t, err)
	assert.Equal(t, root, store.Root())

	addr := modelartifacts.ContentAddress{
		PrefixDir:    "ab",
		SuffixName:   "12cd34ab12cd34ab12cd34ab12cd34",
		DeclaredSize: uint64(len(body)),
	}

	t.Run("Hit", func(t *testing.T) {
		data, err := store.Get(context.Background(), addr)
		require.NoError(t, err)
		assert.Equal(t, body, data)
	})

	t.Run("Miss", func(t *testing.T) {
		missing := addr
		missing.SuffixName = "ffffffffffffffffffffffffffffff"
		_, err := store.Get(context.Background(), missing)
		require.Error(t, err)
		assert.ErrorIs(t, err, modelartifacts.ErrObjectNotFound)
	})

	t.Run("SizeMismatch", func(t *testing.T) {
		wrong := addr
		wrong.DeclaredSize = uint64(len(body)) + 1
		_, err := store.Get(context.Background(), wrong)
		require.Error(t, err)
		assert.ErrorIs(t, err, modelartifacts.ErrIntegrityMismatch)
	})
}

func TestOpen(t *testing.T) {
	t.Run("EmptyRoot", func(t *testing.T) {
		_, err := dvcstore.Open("")
		assert.Error(t, err)
	})

	t.Run("SymlinkedRoot", func(t *testing.T) {
		real := t.TempDir()
		link := filepath.Join(t.TempDir(), "cache-link")
		require.NoError(t, os.Symlink(real, link))

		store, err := dvcstore.Open(link)
		require.NoError(t, err)
		resolved, err := filepath.EvalSymlinks(real)
		require.NoError(t, err)
		assert.Equal(t, resolved, store.Root())
	})

	t.Run("NonexistentRootMissesCleanly", func(t *testing.T) {
		store, err := dvcstore.Open(filepath.Join(t.TempDir(), "never-created"))
		require.NoError(t, err)

		_, err = store.Get(context.Background(), modelartifacts.ContentAddress{
			PrefixDir: "ab", SuffixName: "cdef0123", DeclaredSize: 1,
		})
		assert.ErrorIs(t, err, modelartifacts.ErrObjectNotFound)
	})
}
