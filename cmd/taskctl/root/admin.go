package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newBootstrapAdminCmd() *cobra.Command {
	var email, name, password string
	var credits int64

	cmd := &cobra.Command{
		Use:   "bootstrap-admin",
		Short: "Create the first admin account if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cli, cleanup, err := openCLI(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			cfg := cli.Config.Bootstrap
			if email == "" {
				email = cfg.AdminEmail
			}
			if name == "" {
				name = cfg.AdminName
			}
			if password == "" {
				password = cfg.AdminPassword
			}
			if !cmd.Flags().Changed("credits") {
				credits = cfg.InitialCredits
			}
			if email == "" || password == "" {
				return errors.New("admin email and password are required (flags or bootstrap config)")
			}

			user, created, err := cli.Accounts.EnsureAdmin(ctx, email, name, password)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !created {
				fmt.Fprintf(out, "admin %s already exists (%s)\n", user.Email, user.ID)
				return nil
			}
			fmt.Fprintf(out, "admin %s created (%s)\n", user.Email, user.ID)

			if credits > 0 {
				_, balance, err := cli.Ledger.Grant(ctx, user.ID, credits, nil)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "granted %d credits, balance %d\n", credits, balance)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email (default from bootstrap.admin_email)")
	cmd.Flags().StringVar(&name, "name", "", "admin display name")
	cmd.Flags().StringVar(&password, "password", "", "admin password (default from bootstrap.admin_password)")
	cmd.Flags().Int64Var(&credits, "credits", 0, "initial credits for a newly created admin")
	return cmd
}
