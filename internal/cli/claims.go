package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pridenomad-hub/internal/app"
)

func newConfirmPaymentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm-payment <email>",
		Short: "Settle the oldest pending claim of a payer",
		Long: `Runs the same confirmation the payment webhook does: the payer is
upgraded to the plan's role, a payment is recorded and the listing is
created or verified.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				res, err := a.Claims.ConfirmPayment(ctx, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if wantJSON() {
					return printJSON(out, res)
				}
				fmt.Fprintf(out, "Payment confirmed: %s is now %s (plan %s, %.2f)\n",
					args[0], res.UserRole, res.PlanID, res.Amount)
				return nil
			})
		},
	}
}

func newClaimsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claims",
		Short: "Inspect and clean up pending claims",
	}
	cmd.AddCommand(newClaimsListCmd())
	cmd.AddCommand(newClaimsPurgeCmd())
	return cmd
}

func newClaimsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pending claims",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				pending, err := a.Claims.ListPending(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if wantJSON() {
					return printJSON(out, pending)
				}
				if len(pending) == 0 {
					fmt.Fprintln(out, "No pending claims.")
					return nil
				}
				t := newTable("ID", "EMAIL", "PLAN", "YEARLY", "BUSINESS", "CREATED")
				for _, c := range pending {
					t.addRow(c.ID, c.UserEmail, c.SelectedPlan, fmt.Sprint(c.IsYearly),
						c.BusinessData.BusinessName, c.CreatedAt.Format(time.RFC3339))
				}
				t.render(out)
				return nil
			})
		},
	}
}

func newClaimsPurgeCmd() *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete pending claims older than a cutoff",
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive")
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				n, err := a.Claims.PurgeStale(ctx, olderThan)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Purged %d pending claims.\n", n)
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 72*time.Hour, "age after which a pending claim is dropped")
	return cmd
}
