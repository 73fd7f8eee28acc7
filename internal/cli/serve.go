package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/heimdex/heimdex-media-contracts/internal/api"
	"github.com/heimdex/heimdex-media-contracts/internal/config"
	"github.com/heimdex/heimdex-media-contracts/internal/logging"
	"github.com/heimdex/heimdex-media-contracts/internal/pipeline"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the contract operations over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().String("host", "127.0.0.1", "Listen address")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	startTime := time.Now()
	e, err := loadEnv(cmd, os.Stdout)
	if err != nil {
		return err
	}
	host, _ := cmd.Flags().GetString("host")

	e.logger.Info("starting heimdex-contracts",
		"version", config.Version,
		"port", e.cfg.Port(),
		"auth", e.cfg.AuthToken() != "",
	)
	if e.cfg.AuthToken() != "" {
		e.logger.Debug("auth token configured", "token", logging.SanitizeToken(e.cfg.AuthToken()))
	}

	server := api.NewServer(api.ServerConfig{
		Host:             host,
		Port:             e.cfg.Port(),
		Pipeline:         pipeline.NewProcessor(e.profile, e.logger),
		Profile:          e.profile,
		AuthToken:        e.cfg.AuthToken(),
		BatchConcurrency: e.cfg.BatchConcurrency(),
		ExportFrameRate:  e.cfg.ExportFrameRate(),
		Version:          config.Version,
		Logger:           e.logger,
		StartTime:        startTime,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case sig := <-sigCh:
		e.logger.Info("received shutdown signal", "signal", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		e.logger.Error("failed to shutdown HTTP server", "error", err)
	}
	e.logger.Info("shutdown complete")
	return nil
}
