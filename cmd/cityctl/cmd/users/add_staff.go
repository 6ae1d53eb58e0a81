package users

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/guard"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

var (
	addStaffName     string
	addStaffEmail    string
	addStaffPassword string
	addStaffPhoto    string
)

var addStaffCmd = &cobra.Command{
	Use:     "add-staff",
	Short:   "Create a staff account",
	PreRunE: guard.RequireRole(sdk.RoleAdmin),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(addStaffPassword) < 6 {
			return &sdk.ValidationError{Field: "password", Message: "password must be at least 6 characters"}
		}

		client, err := sdkClient(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		if err := client.AddStaff(ctx, sdk.AddStaffInput{
			Name:     addStaffName,
			Email:    addStaffEmail,
			Password: addStaffPassword,
			Photo:    addStaffPhoto,
		}); err != nil {
			return err
		}

		pterm.Success.Printf("Staff account created for %s.\n", addStaffEmail)
		return nil
	},
}

func init() {
	addStaffCmd.Flags().StringVar(&addStaffName, "name", "", "Display name (required)")
	addStaffCmd.Flags().StringVar(&addStaffEmail, "email", "", "Email address (required)")
	addStaffCmd.Flags().StringVar(&addStaffPassword, "password", "", "Initial password (required)")
	addStaffCmd.Flags().StringVar(&addStaffPhoto, "photo", "", "Profile photo URL")
	addStaffCmd.MarkFlagRequired("name")
	addStaffCmd.MarkFlagRequired("email")
	addStaffCmd.MarkFlagRequired("password")
}
