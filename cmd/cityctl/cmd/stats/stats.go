package stats

import (
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/config"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

// StatsCmd is the parent command for dashboard statistics
var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics",
}

func init() {
	StatsCmd.AddCommand(adminCmd)
	StatsCmd.AddCommand(staffCmd)
}

func sdkClient(cmd *cobra.Command) (*sdk.Client, error) {
	cfg := config.MustFromContext(cmd.Context())
	return cfg.ClientProvider.SDKClient(cmd.Context())
}
