// Package guard provides the command-level equivalents of the web app's
// route guards: commands for a protected view refuse to run unless the
// session resolves to the exact required role. Denial is the default for
// every state other than a confirmed match, including the unresolved one.
package guard

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/config"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

// RoleSource answers role queries; satisfied by *sdk.RoleResolver.
type RoleSource interface {
	Resolve(ctx context.Context) (sdk.Role, bool)
}

// CheckSignedIn denies when no identity is present or the session is
// still loading.
func CheckSignedIn(session sdk.Session) error {
	if session.Loading {
		return fmt.Errorf("session is still loading; try again")
	}
	if session.Identity == nil {
		return fmt.Errorf("not signed in; run `cityctl auth login`")
	}
	return nil
}

// CheckRole denies unless the resolved role exactly matches required.
// An unresolved or still-loading role is treated like denial, never like
// an elevated default.
func CheckRole(ctx context.Context, source RoleSource, required sdk.Role) error {
	role, loading := source.Resolve(ctx)
	if loading {
		return fmt.Errorf("role lookup still pending; try again")
	}
	if role != required {
		return fmt.Errorf("access denied: this command requires the %s role", required)
	}
	return nil
}

// RequireSignIn is a cobra PreRunE denying signed-out sessions.
func RequireSignIn(cmd *cobra.Command, _ []string) error {
	cfg := config.MustFromContext(cmd.Context())
	session, err := cfg.ClientProvider.Session()
	if err != nil {
		return err
	}
	return CheckSignedIn(session)
}

// RequireRole builds a cobra PreRunE denying any session whose role does
// not exactly match required.
func RequireRole(required sdk.Role) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg := config.MustFromContext(cmd.Context())
		session, err := cfg.ClientProvider.Session()
		if err != nil {
			return err
		}
		if err := CheckSignedIn(session); err != nil {
			return err
		}
		resolver, err := cfg.ClientProvider.RoleResolver(cmd.Context())
		if err != nil {
			return err
		}
		return CheckRole(cmd.Context(), resolver, required)
	}
}
