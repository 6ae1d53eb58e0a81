package issues

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show recently resolved issues",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sdkClient(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		issues, err := client.RecentResolved(ctx)
		if err != nil {
			return err
		}

		if len(issues) == 0 {
			pterm.Info.Println("Nothing resolved recently.")
			return nil
		}
		renderIssues(issues)
		return nil
	},
}
