package issues

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/config"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

// IssuesCmd is the parent command for issue operations
var IssuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Browse and manage reported issues",
}

func init() {
	IssuesCmd.AddCommand(listCmd)
	IssuesCmd.AddCommand(recentCmd)
	IssuesCmd.AddCommand(getCmd)
	IssuesCmd.AddCommand(reportCmd)
	IssuesCmd.AddCommand(editCmd)
	IssuesCmd.AddCommand(removeCmd)
	IssuesCmd.AddCommand(upvoteCmd)
	IssuesCmd.AddCommand(mineCmd)
	IssuesCmd.AddCommand(assignedCmd)
	IssuesCmd.AddCommand(assignCmd)
	IssuesCmd.AddCommand(rejectCmd)
	IssuesCmd.AddCommand(setStatusCmd)
	IssuesCmd.AddCommand(timelineCmd)
}

func sdkClient(cmd *cobra.Command) (*sdk.Client, error) {
	cfg := config.MustFromContext(cmd.Context())
	return cfg.ClientProvider.SDKClient(cmd.Context())
}

func sessionEmail(cmd *cobra.Command) (string, error) {
	cfg := config.MustFromContext(cmd.Context())
	session, err := cfg.ClientProvider.Session()
	if err != nil {
		return "", err
	}
	if session.Identity == nil {
		return "", fmt.Errorf("not signed in; run `cityctl auth login`")
	}
	return session.Identity.Email, nil
}

func renderIssues(issues []sdk.Issue) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tLOCATION\tSTATUS\tUPVOTES\tREPORTED")
	for _, issue := range issues {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			issue.ID,
			issue.Title,
			issue.Category,
			issue.Location,
			issue.Status,
			issue.Upvotes,
			issue.CreatedAt.Format(time.DateOnly),
		)
	}
	w.Flush()
}
