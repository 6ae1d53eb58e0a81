package auth

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/config"
	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/guard"
)

var (
	profileName  string
	profilePhoto string
)

var updateProfileCmd = &cobra.Command{
	Use:     "update-profile",
	Short:   "Update your display name and photo",
	PreRunE: guard.RequireSignIn,
	RunE: func(cmd *cobra.Command, args []string) error {
		if profileName == "" && profilePhoto == "" {
			return fmt.Errorf("pass --name and/or --photo")
		}

		cfg := config.MustFromContext(cmd.Context())
		session, err := cfg.ClientProvider.SessionStore()
		if err != nil {
			return err
		}

		identity := session.Session().Identity
		name := profileName
		if name == "" {
			name = identity.DisplayName
		}
		photo := profilePhoto
		if photo == "" {
			photo = identity.PhotoURL
		}

		if err := session.UpdateProfile(cmd.Context(), name, photo); err != nil {
			return err
		}

		pterm.Success.Println("Profile updated")
		return nil
	},
}

func init() {
	updateProfileCmd.Flags().StringVar(&profileName, "name", "", "New display name")
	updateProfileCmd.Flags().StringVar(&profilePhoto, "photo", "", "New photo URL")
}
