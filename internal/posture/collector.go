package posture

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Collector queries every configured source concurrently.
type Collector struct {
	sources []Source
	logger  *zap.Logger
	now     func() time.Time
}

// NewCollector creates a collector over the given sources.
func NewCollector(sources []Source, logger *zap.Logger) *Collector {
	return &Collector{
		sources: sources,
		logger:  logger,
		now:     time.Now,
	}
}

// Collect gathers findings from all sources. A failing source is logged
// and reported in the summary; it does not abort the others.
func (c *Collector) Collect(ctx context.Context) (Summary, error) {
	if len(c.sources) == 0 {
		return Summary{}, fmt.Errorf("no posture sources configured")
	}

	// results are indexed by source so merging follows configuration order
	// rather than completion order.
	results := make([][]Finding, len(c.sources))
	errs := make([]error, len(c.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range c.sources {
		i, src := i, src
		g.Go(func() error {
			start := c.now()
			got, err := src.GetFindings(gctx)
			if err != nil {
				c.logger.Warn("Posture source failed",
					zap.String("source", src.Name()),
					zap.Error(err),
				)
				errs[i] = err
				return nil
			}
			c.logger.Info("Collected findings",
				zap.String("source", src.Name()),
				zap.Int("count", len(got)),
				zap.Duration("elapsed", c.now().Sub(start)),
			)
			results[i] = got
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	var (
		findings []Finding
		failed   []string
	)
	for i, src := range c.sources {
		if errs[i] != nil {
			failed = append(failed, src.Name())
			continue
		}
		findings = append(findings, results[i]...)
	}

	if len(failed) == len(c.sources) {
		return Summary{}, fmt.Errorf("all posture sources failed: %v", failed)
	}

	sort.Strings(failed)
	summary := Summarize(Dedupe(findings), c.now())
	summary.FailedSources = failed
	return summary, nil
}

// PostureContext collects and renders the live posture as prompt text.
func (c *Collector) PostureContext(ctx context.Context) (string, error) {
	summary, err := c.Collect(ctx)
	if err != nil {
		return "", err
	}
	return summary.Context(), nil
}

// Dedupe drops findings sharing a short ID, keeping the first seen. Short
// IDs are filled in where missing.
func Dedupe(findings []Finding) []Finding {
	seen := make(map[string]bool, len(findings))
	out := make([]Finding, 0, len(findings))
	for _, f := range findings {
		if f.FindingIDShort == "" {
			f.FindingIDShort = GenerateShortID(f.CSP, f.AccountID, f.ControlID, f.ResourceID)
		}
		if seen[f.FindingIDShort] {
			continue
		}
		seen[f.FindingIDShort] = true
		out = append(out, f)
	}
	return out
}
