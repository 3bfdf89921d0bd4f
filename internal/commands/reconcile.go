package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/accounts"
	"github.com/tally-dev/tally/internal/reconcile"
	"github.com/tally-dev/tally/internal/runlog"
	"github.com/tally-dev/tally/internal/snapshot"
)

func newReconcileCommand() *cobra.Command {
	var configPath string
	var format string
	var logDir string
	var fromAPI bool
	var logRun bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "reconcile [snapshot-file]",
		Short: "Check that account balances add up to the displayed total",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) > 0 {
				file = args[0]
			}
			return runReconcile(cmd.Context(), reconcileParams{
				configPath: configPath,
				file:       file,
				format:     format,
				logDir:     logDir,
				fromAPI:    fromAPI,
				logRun:     logRun,
				verbose:    verbose,
			})
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "tally.yaml", "config file")
	cmd.Flags().StringVar(&format, "format", "", "snapshot format (csv or html, default: by file extension)")
	cmd.Flags().StringVar(&logDir, "log-dir", ".", "directory holding logs/reconcile-log.csv")
	cmd.Flags().BoolVar(&fromAPI, "from-api", false, "fetch the snapshot from the accounts API instead of a file")
	cmd.Flags().BoolVar(&logRun, "log", false, "append the outcome to the run log")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "debug logging")

	return cmd
}

type reconcileParams struct {
	configPath string
	file       string
	format     string
	logDir     string
	fromAPI    bool
	logRun     bool
	verbose    bool
}

func runReconcile(ctx context.Context, p reconcileParams) error {
	cfg, env, err := loadConfig(p.configPath)
	if err != nil {
		return err
	}
	log := newLogger(p.verbose)

	var table snapshot.Table
	var source string
	switch {
	case p.fromAPI:
		accts, err := newClient(cfg, env, log).Accounts(ctx)
		if err != nil {
			return err
		}
		table = accounts.NewService(accts).Snapshot()
		source = "api"
	case p.file == "":
		return errors.New("a snapshot file is required unless --from-api is set")
	default:
		table, source, err = readSnapshotFile(p.file, p.format)
		if err != nil {
			return err
		}
	}

	res := reconcile.Reconcile(table, cfg.Options())
	printResult(res)

	if p.logRun {
		entry := runlog.FromResult(source, res, time.Now())
		if err := runlog.Append(p.logDir, []runlog.Entry{entry}); err != nil {
			return fmt.Errorf("appending run log: %w", err)
		}
	}

	if !res.Agree {
		return fmt.Errorf("balance mismatch: sum %s vs total %s",
			res.Sum.StringFixed(2), res.ExpectedTotal.StringFixed(2))
	}
	return nil
}

func readSnapshotFile(file, format string) (snapshot.Table, string, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(file), ".")
	}
	reader := snapshot.DefaultRegistry().Get(format)
	if reader == nil {
		return nil, "", fmt.Errorf("unknown snapshot format %q", format)
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, "", fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	table, err := reader.Read(f)
	if err != nil {
		return nil, "", err
	}
	return table, reader.Format(), nil
}

func printResult(res reconcile.Result) {
	fmt.Printf("Accounts: %s\n", strings.Join(res.AccountIDs, ", "))
	fmt.Printf("Sum:      %s\n", res.Sum.StringFixed(2))
	if res.HasTotal {
		fmt.Printf("Total:    %s\n", res.ExpectedTotal.StringFixed(2))
	} else {
		fmt.Println("Total:    (none)")
	}
	if res.Agree {
		fmt.Println("Agreement: ok")
	} else {
		fmt.Println("Agreement: MISMATCH")
	}
}
