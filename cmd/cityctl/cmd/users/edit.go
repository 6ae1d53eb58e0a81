package users

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/guard"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

var (
	editName  string
	editEmail string
)

var editCmd = &cobra.Command{
	Use:     "edit <user-id>",
	Short:   "Edit a user's name or email",
	Args:    cobra.ExactArgs(1),
	PreRunE: guard.RequireRole(sdk.RoleAdmin),
	RunE: func(cmd *cobra.Command, args []string) error {
		if editName == "" && editEmail == "" {
			return fmt.Errorf("pass --name or --email")
		}

		client, err := sdkClient(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		if err := client.UpdateUserInfo(ctx, args[0], sdk.UpdateUserInfoInput{
			Name:  editName,
			Email: editEmail,
		}); err != nil {
			return err
		}

		pterm.Success.Println("User updated.")
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editName, "name", "", "New display name")
	editCmd.Flags().StringVar(&editEmail, "email", "", "New email address")
}
