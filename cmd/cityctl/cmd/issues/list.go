package issues

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

var (
	listSearch   string
	listStatus   string
	listCategory string
	listPage     int
	listLimit    int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List reported issues",
	Long: `Lists reported issues with optional filtering and pagination.

The listing is public; no sign-in is required. Filters combine, so
--status pending --category Roads shows only pending road issues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sdkClient(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		page, err := client.ListIssues(ctx, sdk.ListIssuesOptions{
			Search:   listSearch,
			Status:   listStatus,
			Category: listCategory,
			Page:     listPage,
			Limit:    listLimit,
		})
		if err != nil {
			return err
		}

		if len(page.Issues) == 0 {
			pterm.Info.Println("No issues matched.")
			return nil
		}

		renderIssues(page.Issues)
		if pages := page.TotalPages(); pages > 1 {
			pterm.Info.Printf("Page %d of %d (%d issues total)\n", page.Page, pages, page.Total)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listSearch, "search", "", "Search in title and location")
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (pending, in-progress, resolved, closed, rejected)")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category (Roads, Lighting, Water, Garbage, Others)")
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "Issues per page")
}
