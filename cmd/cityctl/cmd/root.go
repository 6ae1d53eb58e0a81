package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	authcmd "github.com/S-Arafin/City-Resolved/cmd/cityctl/cmd/auth"
	"github.com/S-Arafin/City-Resolved/cmd/cityctl/cmd/issues"
	"github.com/S-Arafin/City-Resolved/cmd/cityctl/cmd/payments"
	"github.com/S-Arafin/City-Resolved/cmd/cityctl/cmd/stats"
	"github.com/S-Arafin/City-Resolved/cmd/cityctl/cmd/users"
	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/client"
	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/config"
)

var (
	serverURL      string
	issuer         string
	clientID       string
	nonInteractive bool
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "cityctl",
	Short: "CityResolved CLI - municipal issue reporting client",
	Long: `cityctl is the command-line client for CityResolved, the municipal
issue-reporting service. Citizens report infrastructure problems, staff work
their assigned queues, and admins manage users, issues, and payments.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		settings, envNonInteractive, err := config.LoadSettings()
		if err != nil {
			return err
		}
		if envNonInteractive {
			nonInteractive = true
		}

		// Flags only override the settings file when explicitly set.
		if cmd.Flags().Changed("server") || settings.ServerURL == "" {
			settings.ServerURL = serverURL
		}
		if cmd.Flags().Changed("issuer") || settings.Issuer == "" {
			settings.Issuer = issuer
		}
		if cmd.Flags().Changed("client-id") || settings.ClientID == "" {
			settings.ClientID = clientID
		}

		logger := zap.NewNop()
		if verbose {
			if logger, err = zap.NewDevelopment(); err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
		}

		provider := client.NewProvider(client.Options{
			ServerURL:    settings.ServerURL,
			Issuer:       settings.Issuer,
			ClientID:     settings.ClientID,
			ClientSecret: settings.ClientSecret,
			Logger:       logger,
		})

		cfg := &config.GlobalConfig{
			ServerURL:      settings.ServerURL,
			Issuer:         settings.Issuer,
			ClientID:       settings.ClientID,
			NonInteractive: nonInteractive,
			ClientProvider: provider,
		}
		cmd.SetContext(config.InjectConfig(cmd.Context(), cfg))
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:3000", "CityResolved API server URL")
	rootCmd.PersistentFlags().StringVar(&issuer, "issuer", "https://auth.cityresolved.example", "Identity provider issuer URL")
	rootCmd.PersistentFlags().StringVar(&clientID, "client-id", "cityctl", "OAuth client ID")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "Disable interactive prompts (also set via CITYRESOLVED_NON_INTERACTIVE=1)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(authcmd.AuthCmd)
	rootCmd.AddCommand(issues.IssuesCmd)
	rootCmd.AddCommand(users.UsersCmd)
	rootCmd.AddCommand(payments.PaymentsCmd)
	rootCmd.AddCommand(stats.StatsCmd)
}
