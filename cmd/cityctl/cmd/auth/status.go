package auth

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	internalauth "github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/auth"
	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		store, err := internalauth.NewFileStore()
		if err != nil {
			return fmt.Errorf("failed to create credential store: %w", err)
		}
		creds, err := store.LoadCredentials()
		if err != nil {
			return fmt.Errorf("not logged in")
		}

		pterm.DefaultSection.Println("Authentication Status")
		pterm.Info.Printf("Signed in as: %s (%s)\n", creds.DisplayName, creds.Email)
		pterm.Info.Printf("Token expires at: %s\n", creds.ExpiresAt.Format(time.RFC1123))

		resolver, err := cfg.ClientProvider.RoleResolver(cmd.Context())
		if err != nil {
			return err
		}
		role, loading := resolver.Resolve(cmd.Context())
		if loading {
			pterm.Info.Println("Role: (lookup pending)")
		} else {
			pterm.Info.Printf("Role: %s\n", role)
		}

		// Decode the token claims for display only; the backend does its
		// own verification.
		claims := jwt.MapClaims{}
		if _, _, err := new(jwt.Parser).ParseUnverified(creds.AccessToken, claims); err == nil {
			pterm.DefaultSection.Println("Token Claims")
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CLAIM\tVALUE")
			for _, key := range []string{"iss", "sub", "aud", "email", "scope"} {
				if value, ok := claims[key]; ok {
					fmt.Fprintf(w, "%s\t%v\n", key, value)
				}
			}
			w.Flush()
		}

		return nil
	},
}
