package modelartifacts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Resolver resolves artifact references through a fixed chain of tiers,
// cheapest first:
//
//  1. the version-namespaced local cache,
//  2. the literal logical path on disk,
//  3. a content-addressed local store (when one is configured),
//  4. a remote fetch, whose result is written back to tier 1.
//
// Tiers within one resolution run strictly in order; distinct resolutions
// are independent and safe to run concurrently.
type Resolver struct {
	cacheDir string
	store    ContentStore
	remote   Fetcher
	versions VersionProvider
	sink     EventSink
	logger   *slog.Logger
}

// ResolverOption represents a functional option for configuring the resolver
type ResolverOption func(*Resolver)

// WithCacheDir sets the root of the version-namespaced cache.
func WithCacheDir(dir string) ResolverOption {
	return func(r *Resolver) {
		r.cacheDir = dir
	}
}

// WithContentStore sets the local content-addressed store. A nil store
// disables the content-store tier.
func WithContentStore(store ContentStore) ResolverOption {
	return func(r *Resolver) {
		r.store = store
	}
}

// WithRemote sets the remote fetcher used as the final tier.
func WithRemote(fetcher Fetcher) ResolverOption {
	return func(r *Resolver) {
		r.remote = fetcher
	}
}

// WithVersionProvider sets the provider of the cache-namespace version tag.
func WithVersionProvider(provider VersionProvider) ResolverOption {
	return func(r *Resolver) {
		r.versions = provider
	}
}

// WithEventSink sets the sink receiving resolution events.
func WithEventSink(sink EventSink) ResolverOption {
	return func(r *Resolver) {
		r.sink = sink
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a resolver with the given options.
func NewResolver(options ...ResolverOption) (*Resolver, error) {
	r := &Resolver{
		versions: NoVersion,
		sink:     NoopEventSink{},
		logger:   slog.Default(),
	}

	for _, option := range options {
		option(r)
	}

	if r.cacheDir == "" {
		return nil, errors.New("cache directory is required")
	}

	return r, nil
}

// Resolve walks the tier chain for ref and returns the artifact bytes from
// the first tier that has them. It fails with ErrArtifactUnavailable
// wrapping the underlying cause when no tier produces the artifact.
func (r *Resolver) Resolve(ctx context.Context, ref ArtifactReference) ([]byte, error) {
	start := time.Now()

	data, tier, err := r.resolveTiers(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrArtifactUnavailable, ref.LogicalPath, err)
	}

	r.logger.DebugContext(ctx, "artifact resolved",
		"logical_path", ref.LogicalPath, "tier", string(tier), "size", len(data))

	event := ResolutionEvent{
		ID:          uuid.New(),
		LogicalPath: ref.LogicalPath,
		Extension:   ref.Extension,
		Tier:        tier,
		Size:        int64(len(data)),
		Elapsed:     time.Since(start),
	}
	if err := r.sink.ArtifactResolved(ctx, event); err != nil {
		r.logger.WarnContext(ctx, "event sink failed", "error", err)
	}

	return data, nil
}

func (r *Resolver) resolveTiers(ctx context.Context, ref ArtifactReference) ([]byte, Tier, error) {
	// Tier 1: version-namespaced cache. Entries were size-checked when
	// written, so they are read back verbatim.
	if tag, ok := r.versions.VersionTag(); ok {
		cachePath := r.cachePath(tag, ref)
		data, err := os.ReadFile(cachePath)
		if err == nil {
			r.logger.DebugContext(ctx, "version cache hit", "path", cachePath)
			return data, TierVersionCache, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			r.logger.WarnContext(ctx, "version cache unreadable", "path", cachePath, "error", err)
		}
	} else {
		r.logger.DebugContext(ctx, "no version tag, skipping version cache", "logical_path", ref.LogicalPath)
	}

	// Tier 2: the artifact may exist at its natural location, e.g. checked
	// out next to its descriptor. No write-back for this tier.
	if data, err := os.ReadFile(ref.LogicalPath); err == nil {
		r.logger.DebugContext(ctx, "literal path hit", "path", ref.LogicalPath)
		return data, TierLiteralPath, nil
	}

	// Tiers 3 and 4 need the content address from the descriptor sidecar.
	addr, err := ParseDescriptor(ref.LogicalPath)
	if err != nil {
		return nil, "", err
	}

	// Tier 3: content-addressed local store.
	if r.store != nil {
		data, err := r.store.Get(ctx, addr)
		switch {
		case err == nil:
			r.logger.DebugContext(ctx, "content store hit", "key", addr.Key(), "root", r.store.Root())
			return data, TierContentStore, nil
		case errors.Is(err, ErrIntegrityMismatch):
			return nil, "", err
		case errors.Is(err, ErrObjectNotFound):
			r.logger.WarnContext(ctx, "content store configured but object missing",
				"key", addr.Key(), "root", r.store.Root())
		default:
			// An unreadable store entry should not make the artifact
			// unresolvable while the remote tier remains.
			r.logger.WarnContext(ctx, "content store read failed", "key", addr.Key(), "error", err)
		}
	}

	// Tier 4: remote fetch, then write-back to the version cache.
	if r.remote == nil {
		return nil, "", errors.New("no remote fetcher configured")
	}

	data, err := r.remote.Fetch(ctx, addr)
	if err != nil {
		return nil, "", err
	}
	if uint64(len(data)) != addr.DeclaredSize {
		return nil, "", fmt.Errorf("%w: remote object %s is %d bytes, descriptor declares %d",
			ErrIntegrityMismatch, addr.Key(), len(data), addr.DeclaredSize)
	}

	if tag, ok := r.versions.VersionTag(); ok {
		cachePath := r.cachePath(tag, ref)
		if err := writeFileAtomic(cachePath, data); err != nil {
			// The caller still gets its bytes; only the next lookup pays.
			r.logger.WarnContext(ctx, "failed to populate version cache", "path", cachePath, "error", err)
		} else {
			r.logger.DebugContext(ctx, "cached remote artifact", "path", cachePath)
		}
	}

	return data, TierRemote, nil
}

// cachePath keys the cache by version tag then artifact basename.
func (r *Resolver) cachePath(tag string, ref ArtifactReference) string {
	return filepath.Join(r.cacheDir, tag, ref.Basename())
}

// writeFileAtomic writes data to a temporary file in the target directory
// and renames it into place, so concurrent readers never observe a
// partially written entry. Concurrent writers for the same artifact race
// benignly: both write the same bytes.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move cache entry into place: %w", err)
	}
	return nil
}
