package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/accounts"
)

func newBillpayCommand() *cobra.Command {
	var configPath string
	var execute bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "billpay",
		Short: "Pay the configured payee from the first account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBillpay(cmd.Context(), configPath, execute, verbose)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "tally.yaml", "config file")
	cmd.Flags().BoolVar(&execute, "execute", false, "perform the payment instead of only planning it")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "debug logging")

	return cmd
}

func runBillpay(ctx context.Context, configPath string, execute, verbose bool) error {
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
	if len(ids) == 0 {
		return errors.New("no accounts available for bill payment")
	}

	amount := decimal.NewFromFloat(cfg.Amounts.Bill)
	fmt.Printf("Pay %s from %s to %q\n", amount.StringFixed(2), ids[0], cfg.Payee.Name)

	if !execute {
		fmt.Println("(dry run; pass --execute to perform the payment)")
		return nil
	}
	return client.PayBill(ctx, ids[0], amount, cfg.Payee)
}
