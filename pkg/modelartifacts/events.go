package modelartifacts

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Tier names the resolution tier that produced an artifact.
type Tier string

const (
	TierVersionCache Tier = "version-cache"
	TierLiteralPath  Tier = "literal-path"
	TierContentStore Tier = "content-store"
	TierRemote       Tier = "remote"
)

// ResolutionEvent records one successful artifact resolution.
type ResolutionEvent struct {
	ID          uuid.UUID
	LogicalPath string
	Extension   string
	Tier        Tier
	Size        int64
	Elapsed     time.Duration
}

// EventSink receives resolution events. Sinks are observational only:
// errors they return are logged and never propagated to the caller.
type EventSink interface {
	// ArtifactResolved is fired after a resolution succeeds, naming the
	// tier that produced the bytes.
	ArtifactResolved(ctx context.Context, event ResolutionEvent) error
}

// NoopEventSink discards all events.
type NoopEventSink struct{}

func (NoopEventSink) ArtifactResolved(ctx context.Context, event ResolutionEvent) error {
	return nil
}

// LogEventSink writes resolution events to a structured logger.
type LogEventSink struct {
	logger *slog.Logger
}

// NewLogEventSink creates an event sink backed by logger. A nil logger uses
// the default slog logger.
func NewLogEventSink(logger *slog.Logger) *LogEventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEventSink{logger: logger}
}

func (s *LogEventSink) ArtifactResolved(ctx context.Context, event ResolutionEvent) error {
	s.logger.InfoContext(ctx, "artifact resolved",
		"event_id", event.ID,
		"logical_path", event.LogicalPath,
		"extension", event.Extension,
		"tier", string(event.Tier),
		"size", event.Size,
		"elapsed", event.Elapsed,
	)
	return nil
}
