package users

import (
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/config"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

// UsersCmd is the parent command for user administration
var UsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Administer user accounts",
}

func init() {
	UsersCmd.AddCommand(listCmd)
	UsersCmd.AddCommand(blockCmd)
	UsersCmd.AddCommand(unblockCmd)
	UsersCmd.AddCommand(editCmd)
	UsersCmd.AddCommand(addStaffCmd)
	UsersCmd.AddCommand(removeCmd)
}

func sdkClient(cmd *cobra.Command) (*sdk.Client, error) {
	cfg := config.MustFromContext(cmd.Context())
	return cfg.ClientProvider.SDKClient(cmd.Context())
}
