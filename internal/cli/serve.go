package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lvonguyen/cspm-advisor/internal/advisor"
	"github.com/lvonguyen/cspm-advisor/internal/api"
	"github.com/lvonguyen/cspm-advisor/internal/preference"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the 'serve' command that runs the HTTP API.
func NewServeCmd(configPath *string) *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the advisor HTTP API",
		Long: `Start the advisor API. Recommendations are loaded in the background
(seed list or AI generation) while the server accepts requests.`,
		Example: `  cspm-advisor serve
  cspm-advisor serve --config configs/config.yaml --listen :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*configPath, listenAddr)
		},
	}

	cmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "Override listen address")

	return cmd
}

func runServe(configPath, listenAddr string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting CSPM Advisor",
		zap.String("listen", cfg.ListenAddr),
		zap.String("source", cfg.Recommendations.Source),
		zap.Bool("posture", cfg.Posture.Enabled()),
	)

	// Handle shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := buildComponents(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.release()

	prefs, err := preference.Open(cfg.Preferences.DBPath)
	if err != nil {
		return err
	}
	defer prefs.Close()

	chat := advisor.NewChatSession(c.provider, advisor.ChatConfig{
		ModelName:   c.provider.ModelName(),
		Temperature: cfg.LLM.ChatTemperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}, time.Now(), logger)

	go func() {
		if err := c.loader.Load(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("Initial load failed", zap.Error(err))
		}
	}()

	handler := api.NewHandler(c.store, c.generator, c.loader, chat, prefs, logger)
	e := api.NewRouter(handler, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("CSPM Advisor stopped")
	return nil
}

