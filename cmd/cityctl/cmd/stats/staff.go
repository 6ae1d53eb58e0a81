package stats

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/config"
	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/guard"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

var staffCmd = &cobra.Command{
	Use:     "staff",
	Short:   "Show your staff queue numbers",
	PreRunE: guard.RequireRole(sdk.RoleStaff),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		session, err := cfg.ClientProvider.Session()
		if err != nil {
			return err
		}

		client, err := sdkClient(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		numbers, err := client.GetStaffStats(ctx, session.Identity.Email)
		if err != nil {
			return err
		}

		pterm.DefaultSection.Println("Your queue")

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "Assigned:\t%d\n", numbers.TotalAssigned)
		fmt.Fprintf(w, "Resolved:\t%d\n", numbers.TotalResolved)
		fmt.Fprintf(w, "Closed:\t%d\n", numbers.TotalClosed)
		w.Flush()
		return nil
	},
}
