package config

import (
	"fmt"
	"log/slog"

	"github.com/furiosa-ai/model-artifacts/pkg/modelartifacts"
	"github.com/furiosa-ai/model-artifacts/pkg/modelartifacts/remote"
)

// WithCacheDir sets the version-namespaced cache root.
func WithCacheDir(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return fmt.Errorf("cache directory cannot be empty")
		}
		c.CacheDir = dir
		return nil
	}
}

// WithDataDir sets the model data root.
func WithDataDir(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return fmt.Errorf("data directory cannot be empty")
		}
		c.DataDir = dir
		return nil
	}
}

// WithStoreRoot points directly at a local content-addressed cache root,
// taking precedence over the DVC_REPO environment variable and discovery.
func WithStoreRoot(root string) Option {
	return func(c *Config) error {
		c.StoreRoot = root
		return nil
	}
}

// WithRemoteEndpoint sets the base URL of the remote artifact store.
func WithRemoteEndpoint(endpoint string) Option {
	return func(c *Config) error {
		if endpoint == "" {
			return fmt.Errorf("remote endpoint cannot be empty")
		}
		c.RemoteEndpoint = endpoint
		return nil
	}
}

// WithS3Remote selects the authenticated S3 fetcher.
func WithS3Remote(s3cfg remote.S3Config) Option {
	return func(c *Config) error {
		if s3cfg.Bucket == "" {
			return fmt.Errorf("s3 bucket cannot be empty")
		}
		c.S3 = &s3cfg
		return nil
	}
}

// WithFetcher injects a prebuilt remote fetcher, taking precedence over
// both the HTTP endpoint and S3 configuration.
func WithFetcher(fetcher modelartifacts.Fetcher) Option {
	return func(c *Config) error {
		if fetcher == nil {
			return fmt.Errorf("fetcher cannot be nil")
		}
		c.fetcher = fetcher
		return nil
	}
}

// WithGeneratedSuffix overrides the generated artifact file-name suffix.
func WithGeneratedSuffix(suffix string) Option {
	return func(c *Config) error {
		c.GeneratedSuffix = suffix
		return nil
	}
}

// WithVersionTag pins a fixed runtime version tag.
func WithVersionTag(tag string) Option {
	return func(c *Config) error {
		c.versions = modelartifacts.StaticVersion(tag)
		return nil
	}
}

// WithVersionProvider injects the provider of the runtime version tag.
func WithVersionProvider(provider modelartifacts.VersionProvider) Option {
	return func(c *Config) error {
		if provider == nil {
			return fmt.Errorf("version provider cannot be nil")
		}
		c.versions = provider
		return nil
	}
}

// WithEventSink injects the sink receiving resolution events.
func WithEventSink(sink modelartifacts.EventSink) Option {
	return func(c *Config) error {
		if sink == nil {
			return fmt.Errorf("event sink cannot be nil")
		}
		c.sink = sink
		return nil
	}
}

// WithLogger injects the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}
