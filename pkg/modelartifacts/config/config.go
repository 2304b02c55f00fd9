// Package config assembles resolvers and loaders from declarative
// configuration with documented precedence: explicit option > environment
// variable > discovered default.
package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/furiosa-ai/model-artifacts/pkg/modelartifacts"
	"github.com/furiosa-ai/model-artifacts/pkg/modelartifacts/dvcstore"
	"github.com/furiosa-ai/model-artifacts/pkg/modelartifacts/remote"
)

// Environment variables honored when the corresponding field is not set
// explicitly.
const (
	EnvCacheHome    = "FURIOSA_MODELS_CACHE_HOME"
	EnvXDGCacheHome = "XDG_CACHE_HOME"
	EnvDVCRepo      = "DVC_REPO"
)

// Option applies configuration to a Config instance.
type Option func(*Config) error

// Load constructs a Config by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*Config, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() Config {
	return Config{
		CacheDir:        DefaultCacheDir(),
		RemoteEndpoint:  remote.DefaultEndpoint,
		GeneratedSuffix: modelartifacts.DefaultGeneratedSuffix,
		versions:        modelartifacts.NoVersion,
		sink:            modelartifacts.NoopEventSink{},
		logger:          slog.Default(),
	}
}

// Config represents configuration for building a resolver and loader.
type Config struct {
	// CacheDir roots the version-namespaced cache.
	CacheDir string

	// DataDir roots the per-model descriptor sidecars and the generated/
	// directory.
	DataDir string

	// StoreRoot points directly at a local content-addressed cache root.
	// When empty, DVC_REPO is consulted, then upward discovery from the
	// working directory; finding none disables the content-store tier.
	StoreRoot string

	// RemoteEndpoint is the base URL of the remote artifact store.
	RemoteEndpoint string

	// GeneratedSuffix names generated artifacts, e.g. "_warboy_2pe".
	GeneratedSuffix string

	// S3 selects the authenticated S3 fetcher instead of plain HTTPS.
	S3 *remote.S3Config

	versions modelartifacts.VersionProvider
	sink     modelartifacts.EventSink
	logger   *slog.Logger
	fetcher  modelartifacts.Fetcher
}

// DefaultCacheDir resolves the cache root from the environment:
// FURIOSA_MODELS_CACHE_HOME, else $XDG_CACHE_HOME/furiosa/models, else
// ~/.cache/furiosa/models.
func DefaultCacheDir() string {
	if dir := os.Getenv(EnvCacheHome); dir != "" {
		return dir
	}
	if dir := os.Getenv(EnvXDGCacheHome); dir != "" {
		return filepath.Join(dir, "furiosa", "models")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".cache", "furiosa", "models")
	}
	return filepath.Join(home, ".cache", "furiosa", "models")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.CacheDir == "" {
		return errors.New("cache directory is required")
	}
	if c.DataDir == "" {
		return errors.New("data directory is required")
	}
	if c.RemoteEndpoint == "" && c.S3 == nil && c.fetcher == nil {
		return errors.New("a remote endpoint, S3 configuration, or fetcher is required")
	}
	return nil
}

// BuildResolver creates a Resolver from the configuration.
func (c *Config) BuildResolver() (*modelartifacts.Resolver, error) {
	fetcher := c.fetcher
	if fetcher == nil {
		if c.S3 != nil {
			s3Fetcher, err := remote.NewS3Fetcher(*c.S3)
			if err != nil {
				return nil, err
			}
			fetcher = s3Fetcher
		} else {
			fetcher = remote.NewHTTPFetcher(remote.HTTPConfig{Endpoint: c.RemoteEndpoint})
		}
	}

	var store modelartifacts.ContentStore
	if root := c.storeRoot(); root != "" {
		s, err := dvcstore.Open(root)
		if err != nil {
			return nil, err
		}
		store = s
	}

	return modelartifacts.NewResolver(
		modelartifacts.WithCacheDir(c.CacheDir),
		modelartifacts.WithContentStore(store),
		modelartifacts.WithRemote(fetcher),
		modelartifacts.WithVersionProvider(c.versions),
		modelartifacts.WithEventSink(c.sink),
		modelartifacts.WithLogger(c.logger),
	)
}

// BuildLoader creates a Loader (and its Resolver) from the configuration.
func (c *Config) BuildLoader() (*modelartifacts.Loader, error) {
	resolver, err := c.BuildResolver()
	if err != nil {
		return nil, err
	}

	return modelartifacts.NewLoader(resolver, c.DataDir,
		modelartifacts.WithGeneratedSuffix(c.GeneratedSuffix),
		modelartifacts.WithLoaderVersionProvider(c.versions),
	)
}

// storeRoot applies the content-store precedence chain.
func (c *Config) storeRoot() string {
	if c.StoreRoot != "" {
		return c.StoreRoot
	}
	if root := os.Getenv(EnvDVCRepo); root != "" {
		return root
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	if root, ok := dvcstore.Discover(wd); ok {
		return root
	}
	return ""
}
