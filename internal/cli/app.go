// Package cli implements the advisor command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lvonguyen/cspm-advisor/internal/advisor"
	"github.com/lvonguyen/cspm-advisor/internal/config"
	"github.com/lvonguyen/cspm-advisor/internal/llm"
	"github.com/lvonguyen/cspm-advisor/internal/posture"
	"github.com/lvonguyen/cspm-advisor/internal/providers/aws"
	"github.com/lvonguyen/cspm-advisor/internal/providers/azure"
	"github.com/lvonguyen/cspm-advisor/internal/providers/gcp"
	"github.com/lvonguyen/cspm-advisor/internal/recommendation"
)

// loadConfig reads .env and then the YAML config.
func loadConfig(path string) (config.Config, error) {
	if err := config.LoadEnv(); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds a production logger at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		zcfg.Level = lvl
	}
	return zcfg.Build()
}

// newProvider returns the configured model backend. A missing key yields
// llm.Unavailable so every remote call takes its fallback path.
func newProvider(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (llm.Provider, error) {
	if cfg.Provider == "none" {
		return llm.Unavailable{}, nil
	}

	provider, err := llm.NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
	if errors.Is(err, llm.ErrNotConfigured) {
		logger.Warn("GEMINI_API_KEY not set; AI features will return fallbacks")
		return llm.Unavailable{}, nil
	}
	if err != nil {
		return nil, err
	}
	return provider, nil
}

// newCollector builds a posture collector over the enabled clouds. It
// returns nil when no cloud is enabled. The returned func releases clients.
func newCollector(ctx context.Context, cfg config.PostureConfig, logger *zap.Logger) (*posture.Collector, func()) {
	var (
		sources []posture.Source
		closers []func()
	)

	if cfg.AWS.Enabled {
		p, err := aws.NewSecurityHubProviderFromEnv(ctx, cfg.AWS.Region, cfg.AWS.AccountID)
		if err != nil {
			logger.Warn("AWS Security Hub unavailable", zap.Error(err))
		} else {
			sources = append(sources, p)
		}
	}
	if cfg.Azure.Enabled {
		p, err := azure.NewDefenderProviderFromEnv(cfg.Azure.SubscriptionID)
		if err != nil {
			logger.Warn("Azure Defender unavailable", zap.Error(err))
		} else {
			sources = append(sources, p)
		}
	}
	if cfg.GCP.Enabled {
		p, err := gcp.NewSCCProvider(ctx, cfg.GCP.OrgID)
		if err != nil {
			logger.Warn("GCP Security Command Center unavailable", zap.Error(err))
		} else {
			sources = append(sources, p)
			closers = append(closers, func() { _ = p.Close() })
		}
	}

	release := func() {
		for _, c := range closers {
			c()
		}
	}
	if len(sources) == 0 {
		return nil, release
	}
	return posture.NewCollector(sources, logger), release
}

// components bundles the advisor pieces shared by every command.
type components struct {
	store     *recommendation.Store
	provider  llm.Provider
	posture   advisor.PostureSource
	generator *advisor.Generator
	loader    *advisor.Loader
	release   func()
}

func buildComponents(ctx context.Context, cfg config.Config, logger *zap.Logger) (*components, error) {
	provider, err := newProvider(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm provider: %w", err)
	}

	generator := advisor.NewGenerator(provider, advisor.GeneratorConfig{
		ModelName:   provider.ModelName(),
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}, logger)

	collector, release := newCollector(ctx, cfg.Posture, logger)
	var postureSource advisor.PostureSource
	if collector != nil {
		postureSource = collector
	}

	store := recommendation.NewStore()
	loader := advisor.NewLoader(store, generator, postureSource, advisor.LoaderConfig{
		Source:  cfg.Recommendations.Source,
		Delay:   cfg.Recommendations.LoadDelay,
		Context: cfg.Recommendations.Context,
	}, logger)

	return &components{
		store:     store,
		provider:  provider,
		posture:   postureSource,
		generator: generator,
		loader:    loader,
		release:   release,
	}, nil
}

// loadNow fills the store synchronously without the artificial delay.
func (c *components) loadNow(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	quick := advisor.NewLoader(c.store, c.generator, c.posture, advisor.LoaderConfig{
		Source:  cfg.Recommendations.Source,
		Context: cfg.Recommendations.Context,
	}, logger)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	return quick.Load(ctx)
}
