package advisor

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lvonguyen/cspm-advisor/internal/recommendation"
)

// Load sources.
const (
	SourceSeed     = "seed"
	SourceGenerate = "generate"
)

// PostureSource supplies a live description of the customer's posture.
type PostureSource interface {
	PostureContext(ctx context.Context) (string, error)
}

// LoaderConfig holds configuration for the initial load.
type LoaderConfig struct {
	Source  string        // seed or generate
	Delay   time.Duration // artificial delay before loading
	Context string        // base context for generation
}

// Loader fills the store once at startup.
type Loader struct {
	store     *recommendation.Store
	generator *Generator
	posture   PostureSource
	config    LoaderConfig
	logger    *zap.Logger
}

// NewLoader creates a loader. generator may be nil for seed loads and
// posture may be nil when live collection is disabled.
func NewLoader(store *recommendation.Store, generator *Generator, posture PostureSource, config LoaderConfig, logger *zap.Logger) *Loader {
	return &Loader{
		store:     store,
		generator: generator,
		posture:   posture,
		config:    config,
		logger:    logger,
	}
}

// Load marks the store as loading, waits out the configured delay and
// populates it. It returns ctx.Err() if cancelled during the delay, leaving
// the store untouched. Records already in the store, such as a list
// generated on request while Load was waiting, are kept.
func (l *Loader) Load(ctx context.Context) error {
	l.store.SetLoading(true)
	defer l.store.SetLoading(false)

	if l.config.Delay > 0 {
		timer := time.NewTimer(l.config.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	source := SourceSeed
	var recs []recommendation.Recommendation
	if l.config.Source == SourceGenerate && l.generator != nil {
		source = SourceGenerate
		recs = l.generator.Generate(ctx, l.BuildContext(ctx))
	} else {
		recs = recommendation.Seed()
	}

	if !l.store.ReplaceIfEmpty(recs) {
		l.logger.Info("Store already populated; discarding initial load", zap.String("source", source))
		return nil
	}
	l.logger.Info("Loaded recommendations", zap.String("source", source), zap.Int("count", len(recs)))
	return nil
}

// BuildContext joins the configured context with the live posture summary.
// A posture failure only drops the live part.
func (l *Loader) BuildContext(ctx context.Context) string {
	parts := []string{}
	if c := strings.TrimSpace(l.config.Context); c != "" {
		parts = append(parts, c)
	}
	if l.posture != nil {
		live, err := l.posture.PostureContext(ctx)
		if err != nil {
			l.logger.Warn("Posture context unavailable", zap.Error(err))
		} else if live != "" {
			parts = append(parts, live)
		}
	}
	if len(parts) == 0 {
		return "New customer onboarding Prisma Cloud and Cortex Cloud; no posture data available yet."
	}
	return strings.Join(parts, "\n\n")
}
