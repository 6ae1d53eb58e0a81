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

var timelineCmd = &cobra.Command{
	Use:   "timeline <issue-id>",
	Short: "Show the audit trail of an issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sdkClient(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		entries, err := client.Timeline(ctx, args[0])
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			pterm.Info.Println("No timeline entries for this issue.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tACTION\tACTOR\tNOTE")
		for _, entry := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				entry.Timestamp.Format(time.RFC822),
				entry.Action,
				entry.Actor,
				entry.Message,
			)
		}
		w.Flush()
		return nil
	},
}
