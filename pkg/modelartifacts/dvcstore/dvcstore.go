// Package dvcstore reads a DVC-style content-addressed object store: files
// named by content hash, sharded into two-character prefix directories under
// a cache root, typically <repo>/.dvc/cache.
package dvcstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/furiosa-ai/model-artifacts/pkg/modelartifacts"
)

// markerDir identifies the repository root during discovery.
const markerDir = ".dvc"

// Store is a read-only content-addressed store rooted at a cache directory.
type Store struct {
	root string
}

// Open creates a store over the given cache root. The root is not required
// to exist yet; a missing root simply misses on every Get. Symlinked roots
// are resolved so sharded paths stay stable.
func Open(root string) (*Store, error) {
	if root == "" {
		return nil, errors.New("store root is required")
	}

	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	return &Store{root: root}, nil
}

// Discover walks from startDir up to the filesystem root looking for a
// directory containing the DVC marker, returning that repository's cache
// root. Reaching the filesystem root without a match reports false, meaning
// no local store is configured; this is not an error.
func Discover(startDir string) (string, bool) {
	dir := startDir
	for {
		marker := filepath.Join(dir, markerDir)
		if info, err := os.Stat(marker); err == nil && info.IsDir() {
			return filepath.Join(marker, "cache"), true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Root returns the store's cache root.
func (s *Store) Root() string {
	return s.root
}

// Get reads the object at addr and enforces its declared size. A missing
// object reports modelartifacts.ErrObjectNotFound; a length disagreement
// reports modelartifacts.ErrIntegrityMismatch.
func (s *Store) Get(ctx context.Context, addr modelartifacts.ContentAddress) ([]byte, error) {
	candidate := filepath.Join(s.root, addr.PrefixDir, addr.SuffixName)

	data, err := os.ReadFile(candidate)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", modelartifacts.ErrObjectNotFound, candidate)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store object %s: %w", candidate, err)
	}

	if uint64(len(data)) != addr.DeclaredSize {
		return nil, fmt.Errorf("%w: store object %s is %d bytes, descriptor declares %d",
			modelartifacts.ErrIntegrityMismatch, candidate, len(data), addr.DeclaredSize)
	}

	return data, nil
}
