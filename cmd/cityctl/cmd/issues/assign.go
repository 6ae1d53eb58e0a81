package issues

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/guard"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

var assignStaffEmail string

var assignCmd = &cobra.Command{
	Use:   "assign <issue-id>",
	Short: "Assign an issue to a staff member",
	Long: `Assigns an issue to a staff member and moves it to in-progress.

The staff member is looked up by --staff (their email) so the issue
record carries their current name, email and photo.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: guard.RequireRole(sdk.RoleAdmin),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sdkClient(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		staff, err := client.GetUser(ctx, assignStaffEmail)
		if err != nil {
			return err
		}
		if staff.Role != sdk.RoleStaff {
			return &sdk.ValidationError{Field: "staff", Message: "user is not a staff member"}
		}

		if err := client.AssignIssue(ctx, args[0], sdk.AssignedStaff{
			ID:    staff.ID,
			Name:  staff.Name,
			Email: staff.Email,
			Photo: staff.Photo,
		}); err != nil {
			return err
		}

		pterm.Success.Printf("Issue assigned to %s.\n", staff.Name)
		return nil
	},
}

func init() {
	assignCmd.Flags().StringVar(&assignStaffEmail, "staff", "", "Email of the staff member (required)")
	assignCmd.MarkFlagRequired("staff")
}
