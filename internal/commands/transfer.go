package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/accounts"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/parabank"
	"github.com/tally-dev/tally/internal/reconcile"
)

func newTransferCommand() *cobra.Command {
	var configPath string
	var execute bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Plan a transfer between the first two accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransfer(cmd.Context(), configPath, execute, verbose)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "tally.yaml", "config file")
	cmd.Flags().BoolVar(&execute, "execute", false, "perform the transfer instead of only planning it")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "debug logging")

	return cmd
}

func runTransfer(ctx context.Context, configPath string, execute, verbose bool) error {
	cfg, env, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	log := newLogger(verbose)
	client := newClient(cfg, env, log)

	accts, err := client.Accounts(ctx)
	if err != nil {
		return err
	}
	ids := accounts.NewService(accts).IDs()

	plan, err := reconcile.PlanTransfer(ids, replenishVia(ctx, client, ids))
	if err != nil {
		return err
	}

	amount := decimal.NewFromFloat(cfg.Amounts.Transfer)
	fmt.Printf("Transfer %s from %s to %s\n", amount.StringFixed(2), plan.From, plan.To)

	if !execute {
		fmt.Println("(dry run; pass --execute to perform the transfer)")
		return nil
	}
	return client.Transfer(ctx, plan.From, plan.To, amount)
}

// replenishVia opens one savings account funded from the sole existing
// account and re-fetches the list. With no account to fund from there is
// nothing it can do, so it reports the ids unchanged and planning falls
// through to ErrNeedsMoreAccounts.
func replenishVia(ctx context.Context, client *parabank.Client, ids []string) func() ([]string, error) {
	return func() ([]string, error) {
		if len(ids) == 0 {
			return ids, nil
		}

		if _, err := client.CreateAccount(ctx, model.AccountTypeSavings, ids[0]); err != nil {
			return nil, err
		}

		accts, err := client.Accounts(ctx)
		if err != nil {
			return nil, err
		}
		return accounts.NewService(accts).IDs(), nil
	}
}
