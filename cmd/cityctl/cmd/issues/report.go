package issues

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/config"
	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/guard"
	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/upload"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

var (
	reportTitle       string
	reportDescription string
	reportCategory    string
	reportLocation    string
	reportPhoto       string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report a new issue",
	Long: `Reports a new issue in your name.

When --photo points to a local file it is uploaded to the image store
first and the issue carries the resulting public URL.`,
	PreRunE: guard.RequireSignIn,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		session, err := cfg.ClientProvider.Session()
		if err != nil {
			return err
		}
		identity := session.Identity

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		photoURL := ""
		if reportPhoto != "" {
			imageCfg, err := upload.ConfigFromEnv()
			if err != nil {
				return err
			}
			uploader, err := upload.New(imageCfg)
			if err != nil {
				return err
			}
			photoURL, err = uploader.Upload(ctx, reportPhoto)
			if err != nil {
				return err
			}
		}

		client, err := sdkClient(cmd)
		if err != nil {
			return err
		}

		issue, err := client.CreateIssue(ctx, sdk.CreateIssueInput{
			Title:       reportTitle,
			Description: reportDescription,
			Category:    reportCategory,
			Location:    reportLocation,
			Photo:       photoURL,
			ReportedBy: sdk.Reporter{
				Name:  identity.DisplayName,
				Email: identity.Email,
				Photo: identity.PhotoURL,
			},
		})
		if err != nil {
			return err
		}

		pterm.Success.Printf("Issue reported. Tracking ID: %s\n", issue.TrackingID)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportTitle, "title", "", "Short issue title (required)")
	reportCmd.Flags().StringVar(&reportDescription, "description", "", "Longer description of the problem")
	reportCmd.Flags().StringVar(&reportCategory, "category", "", "Issue category: Roads, Lighting, Water, Garbage or Others (required)")
	reportCmd.Flags().StringVar(&reportLocation, "location", "", "Where the problem is (required)")
	reportCmd.Flags().StringVar(&reportPhoto, "photo", "", "Path to a photo of the problem")
	reportCmd.MarkFlagRequired("title")
	reportCmd.MarkFlagRequired("category")
	reportCmd.MarkFlagRequired("location")
}
