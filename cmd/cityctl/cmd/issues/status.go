package issues

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/guard"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

var setStatusCmd = &cobra.Command{
	Use:     "set-status <issue-id> <status>",
	Short:   "Update the working status of an assigned issue",
	Args:    cobra.ExactArgs(2),
	PreRunE: guard.RequireRole(sdk.RoleStaff),
	RunE: func(cmd *cobra.Command, args []string) error {
		status := args[1]
		switch status {
		case sdk.IssueStatusInProgress, sdk.IssueStatusResolved, sdk.IssueStatusClosed:
		default:
			return fmt.Errorf("invalid status %q; use in-progress, resolved or closed", status)
		}

		client, err := sdkClient(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		if err := client.SetIssueStatus(ctx, args[0], status); err != nil {
			return err
		}

		pterm.Success.Printf("Issue moved to %s.\n", status)
		return nil
	},
}
