package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert or refresh the built-in prompt catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(context.Background(), cmd)
		},
	}
}

func runSeed(ctx context.Context, cmd *cobra.Command) error {
	cli, cleanup, err := openCLI(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	n, err := cli.Catalog.Seed(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d prompts\n", n)
	return nil
}
