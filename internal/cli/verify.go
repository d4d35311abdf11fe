package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/notify-deploy/internal/cli/render"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the recorded deployment on the block explorer",
		Long: `Verify the contract described by the deployment record on Basescan.

The network, address and constructor arguments come from the record, so
--network is not needed. A contract that is already verified counts as
success. Requires BASESCAN_API_KEY.

Examples:
  notify-deploy verify
  notify-deploy verify --record deployments/base.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.VerifyDeployment.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewVerifyRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	return cmd
}
