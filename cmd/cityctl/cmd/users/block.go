package users

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/guard"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

var blockCmd = &cobra.Command{
	Use:     "block <user-id>",
	Short:   "Block a user account",
	Args:    cobra.ExactArgs(1),
	PreRunE: guard.RequireRole(sdk.RoleAdmin),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setBlocked(cmd, args[0], true)
	},
}

var unblockCmd = &cobra.Command{
	Use:     "unblock <user-id>",
	Short:   "Unblock a user account",
	Args:    cobra.ExactArgs(1),
	PreRunE: guard.RequireRole(sdk.RoleAdmin),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setBlocked(cmd, args[0], false)
	},
}

func setBlocked(cmd *cobra.Command, id string, blocked bool) error {
	client, err := sdkClient(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	if err := client.SetUserStatus(ctx, id, blocked); err != nil {
		return err
	}

	if blocked {
		pterm.Success.Println("User blocked.")
	} else {
		pterm.Success.Println("User unblocked.")
	}
	return nil
}
