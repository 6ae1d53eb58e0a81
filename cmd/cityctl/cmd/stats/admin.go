package stats

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/guard"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

var adminCmd = &cobra.Command{
	Use:     "admin",
	Short:   "Show the community-wide dashboard numbers",
	PreRunE: guard.RequireRole(sdk.RoleAdmin),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sdkClient(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		numbers, err := client.GetAdminStats(ctx)
		if err != nil {
			return err
		}

		pterm.DefaultSection.Println("Community dashboard")

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "Users:\t%d\n", numbers.TotalUsers)
		fmt.Fprintf(w, "Issues:\t%d\n", numbers.TotalIssues)
		fmt.Fprintf(w, "Pending:\t%d\n", numbers.PendingIssues)
		fmt.Fprintf(w, "Resolved:\t%d\n", numbers.ResolvedIssues)
		fmt.Fprintf(w, "Revenue:\t%.2f\n", numbers.Revenue)
		w.Flush()
		return nil
	},
}
