// modelfetch resolves a model's artifact bundle through the cache chain and
// writes each artifact into an output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/furiosa-ai/model-artifacts/pkg/modelartifacts/config"
)

type Config struct {
	DataDir        string `env:"MODELS_DATA_DIR" env-default:"./data"`
	CacheDir       string `env:"MODELS_CACHE_DIR" env-default:""`
	StoreRoot      string `env:"MODELS_STORE_ROOT" env-default:""`
	RemoteEndpoint string `env:"MODELS_REMOTE_ENDPOINT" env-default:""`
	VersionTag     string `env:"RUNTIME_VERSION_TAG" env-default:""`
}

func main() {
	var (
		model   = flag.String("model", "", "model name to fetch (required)")
		outDir  = flag.String("out", ".", "directory to write artifacts into")
		extList = flag.String("ext", "", "comma-separated extensions (default: onnx,calib_range.yaml,enf)")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *model == "" {
		flag.Usage()
		os.Exit(2)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("Failed to read environment", "error", err)
		os.Exit(1)
	}

	var exts []string
	if *extList != "" {
		for _, ext := range strings.Split(*extList, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				exts = append(exts, ext)
			}
		}
	}

	if err := run(context.Background(), cfg, logger, *model, *outDir, exts); err != nil {
		slog.Error("Fetch failed", "model", *model, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, logger *slog.Logger, model, outDir string, exts []string) error {
	opts := []config.Option{
		config.WithDataDir(cfg.DataDir),
		config.WithLogger(logger),
	}
	if cfg.CacheDir != "" {
		opts = append(opts, config.WithCacheDir(cfg.CacheDir))
	}
	if cfg.StoreRoot != "" {
		opts = append(opts, config.WithStoreRoot(cfg.StoreRoot))
	}
	if cfg.RemoteEndpoint != "" {
		opts = append(opts, config.WithRemoteEndpoint(cfg.RemoteEndpoint))
	}
	if cfg.VersionTag != "" {
		opts = append(opts, config.WithVersionTag(cfg.VersionTag))
	}

	libCfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	loader, err := libCfg.BuildLoader()
	if err != nil {
		return err
	}

	bundle, err := loader.LoadBundle(ctx, model, exts...)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for ext, data := range bundle {
		out := filepath.Join(outDir, fmt.Sprintf("%s.%s", model, ext))
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		slog.Info("Artifact written", "path", out, "size", len(data))
	}

	return nil
}
