package payments

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

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List recorded payments",
	PreRunE: guard.RequireRole(sdk.RoleAdmin),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sdkClient(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		payments, err := client.ListPayments(ctx)
		if err != nil {
			return err
		}

		if len(payments) == 0 {
			pterm.Info.Println("No payments recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tEMAIL\tTYPE\tAMOUNT\tTRANSACTION\tSTATUS")
		for _, payment := range payments {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\t%s\n",
				payment.Date.Format(time.DateOnly),
				payment.Email,
				payment.Type,
				payment.Price,
				payment.TransactionID,
				payment.Status,
			)
		}
		w.Flush()
		return nil
	},
}
