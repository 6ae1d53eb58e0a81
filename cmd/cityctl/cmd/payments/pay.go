package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/config"
	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/guard"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

var (
	payAmount float64
	payType   string
	payIssue  string
)

var payCmd = &cobra.Command{
	Use:   "pay",
	Short: "Pay for a subscription or an issue boost",
	Long: `Pays for a premium subscription or boosts an issue's priority.

The payment handshake runs against the backend's payment processor;
--type boost additionally requires --issue with the issue to boost.`,
	PreRunE: guard.RequireSignIn,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch payType {
		case "subscription":
		case "boost":
			if payIssue == "" {
				return fmt.Errorf("--type boost requires --issue")
			}
		default:
			return fmt.Errorf("invalid --type %q; use subscription or boost", payType)
		}

		cfg := config.MustFromContext(cmd.Context())
		session, err := cfg.ClientProvider.Session()
		if err != nil {
			return err
		}
		identity := session.Identity

		client, err := sdkClient(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		intent, err := client.CreatePaymentIntent(ctx, payAmount)
		if err != nil {
			return err
		}

		// The processor encodes the intent ID in front of the secret.
		transactionID, _, _ := strings.Cut(intent.ClientSecret, "_secret")

		if err := client.RecordPayment(ctx, sdk.RecordPaymentInput{
			Email:         identity.Email,
			Name:          identity.DisplayName,
			Price:         payAmount,
			TransactionID: transactionID,
			Type:          payType,
			IssueID:       payIssue,
		}); err != nil {
			return err
		}

		pterm.Success.Printf("Payment of %.2f recorded (transaction %s).\n", payAmount, transactionID)
		return nil
	},
}

func init() {
	payCmd.Flags().Float64Var(&payAmount, "amount", 0, "Amount to pay (required)")
	payCmd.Flags().StringVar(&payType, "type", "subscription", "Payment type: subscription or boost")
	payCmd.Flags().StringVar(&payIssue, "issue", "", "Issue to boost (with --type boost)")
	payCmd.MarkFlagRequired("amount")
}
