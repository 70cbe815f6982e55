package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCreditsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credits",
		Short: "Inspect and grant user credits",
	}
	cmd.AddCommand(newCreditsGrantCmd(), newCreditsBalanceCmd())
	return cmd
}

func newCreditsGrantCmd() *cobra.Command {
	var paymentRef string

	cmd := &cobra.Command{
		Use:   "grant <user_id> <amount>",
		Short: "Record a credit purchase for a user",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("user_id and amount are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[1])
			}

			ctx := context.Background()
			cli, cleanup, err := openCLI(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var ref *string
			if paymentRef != "" {
				ref = &paymentRef
			}
			txn, balance, err := cli.Ledger.Grant(ctx, args[0], amount, ref)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "transaction %s: +%d, balance %d\n", txn.ID, txn.Amount, balance)
			return nil
		},
	}

	cmd.Flags().StringVar(&paymentRef, "payment-ref", "", "external payment reference")
	return cmd
}

func newCreditsBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <user_id>",
		Short: "Print a user's credit balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cli, cleanup, err := openCLI(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			balance, err := cli.Ledger.Balance(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), balance)
			return nil
		},
	}
}
