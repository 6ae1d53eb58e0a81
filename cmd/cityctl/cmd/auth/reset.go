package auth

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/config"
)

var resetEmail string

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Request a password reset email",
	RunE: func(cmd *cobra.Command, args []string) error {
		if resetEmail == "" {
			return fmt.Errorf("--email is required")
		}

		cfg := config.MustFromContext(cmd.Context())
		session, err := cfg.ClientProvider.SessionStore()
		if err != nil {
			return err
		}

		if err := session.ResetPassword(cmd.Context(), resetEmail); err != nil {
			return err
		}

		pterm.Success.Printf("If an account exists for %s, a reset email is on its way.\n", resetEmail)
		return nil
	},
}

func init() {
	resetPasswordCmd.Flags().StringVar(&resetEmail, "email", "", "Account email address")
}
