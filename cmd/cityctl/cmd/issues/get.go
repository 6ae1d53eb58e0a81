package issues

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <issue-id>",
	Short: "Show one issue in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sdkClient(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		issue, err := client.GetIssue(ctx, args[0])
		if err != nil {
			return err
		}

		pterm.DefaultSection.Println(issue.Title)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "ID:\t%s\n", issue.ID)
		fmt.Fprintf(w, "Tracking ID:\t%s\n", issue.TrackingID)
		fmt.Fprintf(w, "Category:\t%s\n", issue.Category)
		fmt.Fprintf(w, "Location:\t%s\n", issue.Location)
		fmt.Fprintf(w, "Status:\t%s\n", issue.Status)
		fmt.Fprintf(w, "Priority:\t%s\n", issue.Priority)
		fmt.Fprintf(w, "Upvotes:\t%d\n", issue.Upvotes)
		fmt.Fprintf(w, "Reported by:\t%s (%s)\n", issue.ReportedBy.Name, issue.ReportedBy.Email)
		if issue.Assigned != nil {
			fmt.Fprintf(w, "Assigned to:\t%s (%s)\n", issue.Assigned.Name, issue.Assigned.Email)
		}
		fmt.Fprintf(w, "Reported:\t%s\n", issue.CreatedAt.Format(time.RFC1123))
		if issue.Photo != "" {
			fmt.Fprintf(w, "Photo:\t%s\n", issue.Photo)
		}
		w.Flush()

		if issue.Description != "" {
			fmt.Println()
			fmt.Println(issue.Description)
		}
		return nil
	},
}
