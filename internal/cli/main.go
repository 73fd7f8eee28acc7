// Package cli wires the contract packages into the heimdex-contracts
// command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/heimdex/heimdex-media-contracts/internal/config"
	"github.com/heimdex/heimdex-media-contracts/internal/logging"
	"github.com/heimdex/heimdex-media-contracts/internal/profile"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := NewRootCommand()
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "heimdex-contracts",
		Short:         "Validate, merge, score and export heimdex media pipeline outputs",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("profile", "", "Profile file (.yaml, .yml or .toml); overrides HEIMDEX_PROFILE_PATH")

	root.AddCommand(
		newServeCommand(),
		newProcessCommand(),
		newExportCommand(),
		newSampleCommand(),
		newIngestCommand(),
	)
	return root
}

// env is what every command needs: configuration, a logger and the
// active profile.
type env struct {
	cfg     *config.EnvConfig
	logger  *slog.Logger
	profile profile.Profile
}

// loadEnv reads the environment and profile. Logs go to logOut so command
// output on stdout stays machine readable.
func loadEnv(cmd *cobra.Command, logOut io.Writer) (*env, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := logging.NewLoggerTo(logOut, cfg.LogLevel())

	path := cfg.ProfilePath()
	if p, _ := cmd.Flags().GetString("profile"); p != "" {
		path = p
	}
	prof, err := profile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if path != "" {
		logger.Debug("profile loaded", "path", logging.SanitizePath(path))
	}
	return &env{cfg: cfg, logger: logger, profile: prof}, nil
}
