package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"task-prompt-api/internal/infrastructure/persistence/postgres"
	"task-prompt-api/migrations"
)

func newMigrateCmd() *cobra.Command {
	var seed bool
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			m, err := postgres.NewMigrator(&cfg.Database.Postgres, migrations.FS)
			if err != nil {
				return err
			}
			defer m.Close()

			out := cmd.OutOrStdout()
			if down {
				version, err := m.Down(ctx)
				if err != nil {
					return err
				}
				if version == "" {
					fmt.Fprintln(out, "nothing to roll back")
				} else {
					fmt.Fprintf(out, "rolled back %s\n", version)
				}
				return nil
			}

			applied, err := m.Up(ctx)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(out, "schema is up to date")
			}
			for _, v := range applied {
				fmt.Fprintf(out, "applied %s\n", v)
			}

			if !seed {
				return nil
			}
			return runSeed(ctx, cmd)
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", true, "seed the prompt catalog after migrating")
	cmd.Flags().BoolVar(&down, "down", false, "roll back the most recent migration instead")
	return cmd
}
