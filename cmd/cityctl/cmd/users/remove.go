package users

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/guard"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

var removeCmd = &cobra.Command{
	Use:     "remove <user-id>",
	Short:   "Delete a user account",
	Args:    cobra.ExactArgs(1),
	PreRunE: guard.RequireRole(sdk.RoleAdmin),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sdkClient(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		if err := client.DeleteUser(ctx, args[0]); err != nil {
			return err
		}

		pterm.Success.Println("User deleted.")
		return nil
	},
}
