package issues

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/guard"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

var assignedCmd = &cobra.Command{
	Use:     "assigned",
	Short:   "List the issues assigned to you",
	PreRunE: guard.RequireRole(sdk.RoleStaff),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := sessionEmail(cmd)
		if err != nil {
			return err
		}

		client, err := sdkClient(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		issues, err := client.AssignedIssues(ctx, email)
		if err != nil {
			return err
		}

		if len(issues) == 0 {
			pterm.Info.Println("Your queue is empty.")
			return nil
		}
		renderIssues(issues)
		return nil
	},
}
