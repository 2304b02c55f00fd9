package modelartifacts

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultGeneratedSuffix is appended to a model name when deriving the file
// name of its compiled program image.
const DefaultGeneratedSuffix = "_warboy_2pe"

// Loader locates the artifacts belonging to a model name under a data root
// and resolves them through a Resolver, concurrently for whole bundles.
type Loader struct {
	resolver        *Resolver
	dataDir         string
	generatedSuffix string
	versions        VersionProvider
}

// LoaderOption represents a functional option for configuring the loader
type LoaderOption func(*Loader)

// WithGeneratedSuffix overrides the file-name suffix of generated
// artifacts.
func WithGeneratedSuffix(suffix string) LoaderOption {
	return func(l *Loader) {
		l.generatedSuffix = suffix
	}
}

// WithLoaderVersionProvider sets the provider used to locate generated
// artifacts. It should be the same provider the resolver namespaces its
// cache with.
func WithLoaderVersionProvider(provider VersionProvider) LoaderOption {
	return func(l *Loader) {
		l.versions = provider
	}
}

// NewLoader creates a loader over dataDir backed by resolver.
func NewLoader(resolver *Resolver, dataDir string, options ...LoaderOption) (*Loader, error) {
	if resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}
	if dataDir == "" {
		return nil, fmt.Errorf("data directory is required")
	}

	l := &Loader{
		resolver:        resolver,
		dataDir:         dataDir,
		generatedSuffix: DefaultGeneratedSuffix,
		versions:        resolver.versions,
	}

	for _, option := range options {
		option(l)
	}

	return l, nil
}

// Resolve resolves a single artifact of the named model.
func (l *Loader) Resolve(ctx context.Context, name, ext string) ([]byte, error) {
	ref, err := l.reference(name, ext)
	if err != nil {
		return nil, err
	}

	data, err := l.resolver.Resolve(ctx, ref)
	if err != nil {
		return nil, &ArtifactError{Name: name, Extension: ext, Op: "resolve", Err: err}
	}
	return data, nil
}

// LoadBundle resolves every requested extension of the named model
// concurrently and assembles the results. With no extensions given it loads
// DefaultExtensions. The call fails as a whole if any single extension
// fails; there is no partial bundle.
func (l *Loader) LoadBundle(ctx context.Context, name string, extensions ...string) (ArtifactBundle, error) {
	exts := extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	results := make([][]byte, len(exts))
	g, ctx := errgroup.WithContext(ctx)
	for i, ext := range exts {
		i, ext := i, ext
		g.Go(func() error {
			data, err := l.Resolve(ctx, name, ext)
			if err != nil {
				return err
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bundle := make(ArtifactBundle, len(exts))
	for i, ext := range exts {
		bundle[ext] = results[i]
	}
	return bundle, nil
}

// reference derives the logical path of one artifact. Generated artifacts
// live under a version-scoped directory; everything else is located by its
// descriptor sidecar under the model's data directory.
func (l *Loader) reference(name, ext string) (ArtifactReference, error) {
	if IsGeneratedExtension(ext) {
		tag, ok := l.versions.VersionTag()
		if !ok {
			return ArtifactReference{}, &ArtifactError{
				Name: name, Extension: ext, Op: "locate", Err: ErrVersionTagUnavailable,
			}
		}
		fileName := fmt.Sprintf("%s%s.%s", name, l.generatedSuffix, ext)
		return ArtifactReference{
			LogicalPath: filepath.Join(l.dataDir, "generated", tag, fileName),
			Extension:   ext,
		}, nil
	}

	pattern := filepath.Join(l.dataDir, name, "*."+ext+DescriptorSuffix)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return ArtifactReference{}, &ArtifactError{Name: name, Extension: ext, Op: "locate", Err: err}
	}
	if len(matches) == 0 {
		return ArtifactReference{}, &ArtifactError{
			Name: name, Extension: ext, Op: "locate",
			Err: fmt.Errorf("%w: no sidecar matches %s", ErrDescriptorMalformed, pattern),
		}
	}
	if len(matches) > 1 {
		return ArtifactReference{}, &ArtifactError{
			Name: name, Extension: ext, Op: "locate",
			Err: fmt.Errorf("%w: %d sidecars match %s", ErrDescriptorMalformed, len(matches), pattern),
		}
	}

	return ArtifactReference{
		LogicalPath: strings.TrimSuffix(matches[0], DescriptorSuffix),
		Extension:   ext,
	}, nil
}
