package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/notify-deploy/internal/cli/render"
	"github.com/trebuchet-org/notify-deploy/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List available networks",
		Long: `List the built-in Base networks and any networks added in notify.toml,
with the RPC endpoint in use and whether a signing account is configured.

With --check every network is dialed and its chain ID compared.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			// Run use case
			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{Check: check})
			if err != nil {
				return err
			}

			// Render output
			return render.NewNetworksRenderer(cmd.OutOrStdout()).RenderNetworksList(result)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Dial each network and verify its chain ID")

	return cmd
}
