package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pridenomad-hub/internal/domain/plans"
)

func newPlansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "Print the plan catalog and tier limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := plans.Catalog()
			out := cmd.OutOrStdout()
			if wantJSON() {
				return printJSON(out, catalog)
			}
			t := newTable("PLAN", "TIER", "MONTHLY", "YEARLY", "CATEGORIES", "IMAGES", "VIDEO")
			for _, p := range catalog {
				t.addRow(p.ID, string(p.Tier),
					fmt.Sprintf("%.2f", p.MonthlyPrice), fmt.Sprintf("%.2f", p.YearlyPrice),
					limit(p.Limits.MaxCategories), limit(p.Limits.MaxImages), fmt.Sprint(p.Limits.AllowsVideo))
			}
			t.render(out)
			return nil
		},
	}
}

func limit(n int) string {
	if n == plans.Unlimited {
		return "unlimited"
	}
	return fmt.Sprint(n)
}
