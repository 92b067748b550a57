package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pridenomad-hub/internal/app"
	"pridenomad-hub/internal/domain/admins"
	"pridenomad-hub/internal/domain/users"
)

func newAdminsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admins",
		Short: "Manage the admin allowlist",
	}
	cmd.AddCommand(newAdminsListCmd())
	cmd.AddCommand(newAdminsAddCmd())
	cmd.AddCommand(newAdminsRemoveCmd())
	return cmd
}

func newAdminsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored admins",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				list, err := a.Store.Admins().List(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if wantJSON() {
					return printJSON(out, list)
				}
				t := newTable("EMAIL", "ADDED BY", "ADDED AT")
				for _, ad := range list {
					t.addRow(ad.Email, ad.AddedBy, ad.AddedAt.Format(time.RFC3339))
				}
				t.render(out)
				return nil
			})
		},
	}
}

func newAdminsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <email>",
		Short: "Grant admin rights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := users.NormalizeEmail(args[0])
			if email == "" {
				return fmt.Errorf("email is required")
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Store.Admins().Add(ctx, &admins.Admin{Email: email, AddedBy: "hubctl"}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added admin %s.\n", email)
				return nil
			})
		},
	}
}

func newAdminsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <email>",
		Short: "Revoke admin rights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Store.Admins().Remove(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed admin %s.\n", users.NormalizeEmail(args[0]))
				return nil
			})
		},
	}
}
