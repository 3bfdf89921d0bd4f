package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/accounts"
	"github.com/tally-dev/tally/internal/reconcile"
)

func newAccountsCommand() *cobra.Command {
	var configPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List accounts from the bank API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccounts(cmd.Context(), configPath, verbose)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "tally.yaml", "config file")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "debug logging")

	return cmd
}

func runAccounts(ctx context.Context, configPath string, verbose bool) error {
	cfg, env, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	log := newLogger(verbose)

	accts, err := newClient(cfg, env, log).Accounts(ctx)
	if err != nil {
		return err
	}

	svc := accounts.NewService(accts)
	for _, a := range svc.All() {
		fmt.Printf("%d\t%s\t%s\n", a.ID, a.Type, a.Balance.StringFixed(2))
	}

	res := reconcile.Reconcile(svc.Snapshot(), cfg.Options())
	fmt.Printf("%d accounts, combined balance %s\n", len(res.AccountIDs), res.Sum.StringFixed(2))
	return nil
}
