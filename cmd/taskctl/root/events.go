package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect the domain event stream",
	}
	cmd.AddCommand(newEventsTailCmd())
	return cmd
}

func newEventsTailCmd() *cobra.Command {
	var count int64

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print the most recent domain events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cli, cleanup, err := openCLI(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			msgs, err := cli.Producer.Recent(ctx, count)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(msgs) == 0 {
				fmt.Fprintln(out, "no events")
				return nil
			}
			for _, m := range msgs {
				fmt.Fprintf(out, "%s  %-20s user=%s %s\n",
					m.CreatedAt.Format(time.RFC3339), m.Type, m.UserID, string(m.Payload))
			}
			return nil
		},
	}

	cmd.Flags().Int64VarP(&count, "count", "n", 20, "number of events to show")
	return cmd
}
