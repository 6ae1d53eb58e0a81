package issues

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/guard"
)

var upvoteCmd = &cobra.Command{
	Use:     "upvote <issue-id>",
	Short:   "Upvote an issue (or take your upvote back)",
	Args:    cobra.ExactArgs(1),
	PreRunE: guard.RequireSignIn,
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

		if err := client.ToggleUpvote(ctx, args[0], email); err != nil {
			return err
		}

		pterm.Success.Println("Upvote toggled.")
		return nil
	},
}
