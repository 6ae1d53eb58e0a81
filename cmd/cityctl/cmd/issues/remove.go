package issues

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/guard"
)

var removeCmd = &cobra.Command{
	Use:     "remove <issue-id>",
	Short:   "Delete one of your own issues",
	Args:    cobra.ExactArgs(1),
	PreRunE: guard.RequireSignIn,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sdkClient(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		if err := client.DeleteIssue(ctx, args[0]); err != nil {
			return err
		}

		pterm.Success.Println("Issue deleted.")
		return nil
	},
}
