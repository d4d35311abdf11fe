package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/notify-deploy/internal/cli/render"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the recorded deployment",
		Long: `Print the deployment record written by the last successful deploy.

Examples:
  notify-deploy show
  notify-deploy show -o json
  notify-deploy show -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := render.NewShowRenderer(cmd.OutOrStdout(), output)
			if err != nil {
				return err
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowDeployment.Run(cmd.Context())
			if err != nil {
				return err
			}

			return renderer.Render(result)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", render.FormatText, "Output format (text, json, yaml)")

	return cmd
}
