package payments

import (
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/config"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

// PaymentsCmd is the parent command for payment operations
var PaymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Make and review payments",
}

func init() {
	PaymentsCmd.AddCommand(payCmd)
	PaymentsCmd.AddCommand(listCmd)
}

func sdkClient(cmd *cobra.Command) (*sdk.Client, error) {
	cfg := config.MustFromContext(cmd.Context())
	return cfg.ClientProvider.SDKClient(cmd.Context())
}
