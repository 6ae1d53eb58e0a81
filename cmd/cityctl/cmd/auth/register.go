package auth

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/config"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

var (
	registerName     string
	registerEmail    string
	registerPassword string
	registerPhoto    string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a CityResolved account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if registerName == "" || registerEmail == "" || registerPassword == "" {
			return fmt.Errorf("--name, --email, and --password are required")
		}
		if len(registerPassword) < 6 {
			return &sdk.ValidationError{Field: "password", Message: "must be at least 6 characters"}
		}

		cfg := config.MustFromContext(cmd.Context())
		session, err := cfg.ClientProvider.SessionStore()
		if err != nil {
			return err
		}

		if err := session.CreateAccount(cmd.Context(), registerEmail, registerPassword, registerName, registerPhoto); err != nil {
			return err
		}

		sdkClient, err := cfg.ClientProvider.SDKClient(cmd.Context())
		if err != nil {
			return err
		}
		if err := sdkClient.CreateUser(cmd.Context(), sdk.CreateUserInput{
			Name:  registerName,
			Email: registerEmail,
			Photo: registerPhoto,
		}); err != nil {
			return fmt.Errorf("account created, but the backend user record failed: %w", err)
		}

		pterm.Success.Printf("Welcome to CityResolved, %s!\n", registerName)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email address")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Password (at least 6 characters)")
	registerCmd.Flags().StringVar(&registerPhoto, "photo", "", "Profile photo URL")
}
