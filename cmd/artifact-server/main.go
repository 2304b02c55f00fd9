package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/furiosa-ai/model-artifacts/pkg/modelartifacts"
	"github.com/furiosa-ai/model-artifacts/pkg/modelartifacts/api"
	"github.com/furiosa-ai/model-artifacts/pkg/modelartifacts/config"
	"github.com/furiosa-ai/model-artifacts/pkg/modelartifacts/remote"
)

type Config struct {
	Port            string `env:"PORT" env-default:"8080"`
	DataDir         string `env:"MODELS_DATA_DIR" env-default:"./data"`
	CacheDir        string `env:"MODELS_CACHE_DIR" env-default:""`
	StoreRoot       string `env:"MODELS_STORE_ROOT" env-default:""`
	RemoteEndpoint  string `env:"MODELS_REMOTE_ENDPOINT" env-default:""`
	GeneratedSuffix string `env:"MODELS_GENERATED_SUFFIX" env-default:""`
	VersionTag      string `env:"RUNTIME_VERSION_TAG" env-default:""`
	AuthSecret      string `env:"API_AUTH_SECRET" env-default:""`
	S3              S3Config
}

type S3Config struct {
	Bucket          string `env:"AWS_S3_BUCKET" env-default:""`
	Prefix          string `env:"AWS_S3_PREFIX" env-default:""`
	Region          string `env:"AWS_S3_REGION" env-default:"us-east-1"`
	Endpoint        string `env:"AWS_S3_ENDPOINT" env-default:""`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:""`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:""`
	UsePathStyle    bool   `env:"AWS_S3_USE_PATH_STYLE" env-default:"false"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("Failed to read environment", "error", err)
		os.Exit(1)
	}

	loader, err := buildLoader(cfg, logger)
	if err != nil {
		slog.Error("Failed to build artifact loader", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	handler := api.NewArtifactHandler(loader)
	r.Route("/api/v1/models", func(r chi.Router) {
		if cfg.AuthSecret != "" {
			tokenAuth := jwtauth.New("HS256", []byte(cfg.AuthSecret), nil)
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(jwtauth.Authenticator)
		}
		r.Mount("/", handler.Routes())
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("Starting artifact server", "addr", addr, "data_dir", cfg.DataDir)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func buildLoader(cfg Config, logger *slog.Logger) (*modelartifacts.Loader, error) {
	opts := []config.Option{
		config.WithDataDir(cfg.DataDir),
		config.WithLogger(logger),
		config.WithEventSink(modelartifacts.NewLogEventSink(logger)),
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
	if cfg.GeneratedSuffix != "" {
		opts = append(opts, config.WithGeneratedSuffix(cfg.GeneratedSuffix))
	}
	if cfg.VersionTag != "" {
		opts = append(opts, config.WithVersionTag(cfg.VersionTag))
	}
	if cfg.S3.Bucket != "" {
		opts = append(opts, config.WithS3Remote(remote.S3Config{
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			Prefix:          cfg.S3.Prefix,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Endpoint:        cfg.S3.Endpoint,
			UsePathStyle:    cfg.S3.UsePathStyle,
		}))
	}

	libCfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}
	return libCfg.BuildLoader()
}
