package users

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/guard"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

var listRole string

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List user accounts",
	PreRunE: guard.RequireRole(sdk.RoleAdmin),
	RunE: func(cmd *cobra.Command, args []string) error {
		role := sdk.RoleUnresolved
		if listRole != "" {
			role = sdk.ParseRole(listRole)
			if role == sdk.RoleUnresolved {
				return fmt.Errorf("unknown role %q; use citizen, staff or admin", listRole)
			}
		}

		client, err := sdkClient(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		users, err := client.ListUsers(ctx, role)
		if err != nil {
			return err
		}

		if len(users) == 0 {
			pterm.Info.Println("No users matched.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tBLOCKED")
		for _, user := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n",
				user.ID, user.Name, user.Email, user.Role, user.Blocked)
		}
		w.Flush()
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listRole, "role", "", "Filter by role (citizen, staff, admin)")
}
