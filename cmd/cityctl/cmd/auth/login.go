package auth

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/config"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

var (
	loginEmail    string
	loginPassword string
	loginBrowser  bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to CityResolved",
	Long: `Signs in to CityResolved through the identity provider.

Two methods are supported:
1. Email and password: pass --email and --password.
2. Browser sign-in: pass --browser to approve the sign-in in your browser
   (federated providers are handled by the identity provider's own page).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		session, err := cfg.ClientProvider.SessionStore()
		if err != nil {
			return err
		}

		if loginBrowser {
			if err := session.SignInWithBrowser(cmd.Context()); err != nil {
				var closed *sdk.PopupClosedError
				if errors.As(err, &closed) {
					// An abandoned browser flow is a report, not a failure.
					pterm.Warning.Println("Sign-in was not completed:", closed.Reason)
					return nil
				}
				return err
			}
		} else {
			if loginEmail == "" || loginPassword == "" {
				return fmt.Errorf("pass --email and --password, or use --browser")
			}
			if err := session.SignIn(cmd.Context(), loginEmail, loginPassword); err != nil {
				return err
			}
		}

		identity := session.Session().Identity
		if identity == nil {
			return fmt.Errorf("sign-in did not produce an identity")
		}

		// Make sure the backend knows this user; the record may already
		// exist, which the backend answers with a conflict we ignore.
		if sdkClient, err := cfg.ClientProvider.SDKClient(cmd.Context()); err == nil {
			err := sdkClient.CreateUser(cmd.Context(), sdk.CreateUserInput{
				Name:  identity.DisplayName,
				Email: identity.Email,
				Photo: identity.PhotoURL,
			})
			var apiErr *sdk.APIError
			if err != nil && !errors.As(err, &apiErr) {
				pterm.Warning.Println("Could not sync user record:", err)
			}
		}

		pterm.Success.Printf("Signed in as %s (%s)\n", identity.DisplayName, identity.Email)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	loginCmd.Flags().BoolVar(&loginBrowser, "browser", false, "Sign in through the browser flow")
}
