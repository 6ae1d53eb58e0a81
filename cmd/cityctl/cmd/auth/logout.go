package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/config"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out from CityResolved",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		session, err := cfg.ClientProvider.SessionStore()
		if err != nil {
			return err
		}
		if err := session.SignOut(cmd.Context()); err != nil {
			return err
		}

		fmt.Println("Signed out successfully")
		return nil
	},
}
