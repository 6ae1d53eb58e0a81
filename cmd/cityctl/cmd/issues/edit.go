package issues

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/guard"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

var (
	editTitle       string
	editDescription string
	editCategory    string
	editLocation    string
)

var editCmd = &cobra.Command{
	Use:     "edit <issue-id>",
	Short:   "Edit one of your own issues",
	Args:    cobra.ExactArgs(1),
	PreRunE: guard.RequireSignIn,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sdkClient(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		if err := client.UpdateIssue(ctx, args[0], sdk.UpdateIssueInput{
			Title:       editTitle,
			Description: editDescription,
			Category:    editCategory,
			Location:    editLocation,
		}); err != nil {
			return err
		}

		pterm.Success.Println("Issue updated.")
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVar(&editDescription, "description", "", "New description")
	editCmd.Flags().StringVar(&editCategory, "category", "", "New category")
	editCmd.Flags().StringVar(&editLocation, "location", "", "New location")
}
