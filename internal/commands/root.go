package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/buildinfo"
	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/parabank"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Account snapshot reconciliation for the demo bank",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newReconcileCommand())
	rootCmd.AddCommand(newAccountsCommand())
	rootCmd.AddCommand(newTransferCommand())
	rootCmd.AddCommand(newBillpayCommand())

	return rootCmd
}

// loadConfig reads tally.yaml and applies TALLY_* environment overrides.
// A missing file falls back to the built-in demo defaults so the tool works
// without an init step.
func loadConfig(path string) (*config.Config, config.Env, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, config.Env{}, err
		}
		cfg = config.Default()
	}

	env, err := config.LoadEnv()
	if err != nil {
		return nil, config.Env{}, err
	}
	cfg.ApplyEnv(env)
	return cfg, env, nil
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func newClient(cfg *config.Config, env config.Env, log zerolog.Logger) *parabank.Client {
	return parabank.NewClient(cfg.Application.BaseURL, cfg.API.CustomerID, env.Session, log)
}
