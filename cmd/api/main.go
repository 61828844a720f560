// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpin "narratives-solana/internal/adapters/in/http"
	"narratives-solana/internal/infra/config"
	"narratives-solana/internal/platform/di"
	"narratives-solana/internal/platform/logger"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:          "solana-api",
		Short:        "Solana keypair and SPL Token instruction API",
		SilenceUsage: true,
		RunE:         runServer,
	}
	rootCmd.Flags().StringP("config", "c", "", "Path to configuration file (overrides "+config.EnvConfigFile+")")
	rootCmd.Flags().Bool("debug", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	debugFlag, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Environment, cfg.Debug || debugFlag)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ─────────────────────────────────────────────────────────────
	// DI container & router
	// ─────────────────────────────────────────────────────────────
	cont, err := di.NewContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("di init: %w", err)
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      httpin.NewRouter(cont.RouterDeps()),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("[boot] listening",
			"addr", cfg.Addr(),
			"environment", cfg.Environment,
			"token_program", cfg.Solana.TokenProgramID,
			"rate_limit_rps", cfg.RateLimit.RPS,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// ─────────────────────────────────────────────────────────────
	// Graceful shutdown
	// ─────────────────────────────────────────────────────────────
	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("[boot] shutting down", "timeout", cfg.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("[boot] server shutdown error", err)
		return err
	}
	logger.Info("[boot] server stopped")
	return nil
}
