package issues

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/guard"
)

var mineCmd = &cobra.Command{
	Use:     "mine",
	Short:   "List the issues you reported",
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

		issues, err := client.MyIssues(ctx, email)
		if err != nil {
			return err
		}

		if len(issues) == 0 {
			pterm.Info.Println("You have not reported any issues yet.")
			return nil
		}
		renderIssues(issues)
		return nil
	},
}
