package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/notify-deploy/internal/app"
	"github.com/trebuchet-org/notify-deploy/internal/cli/render"
	"github.com/trebuchet-org/notify-deploy/internal/config"
	domainconfig "github.com/trebuchet-org/notify-deploy/internal/domain/config"
	"github.com/trebuchet-org/notify-deploy/internal/usecase"
)

// errDeployCancelled is returned when the operator declines the mainnet prompt
var errDeployCancelled = errors.New("deployment cancelled")

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var constructorArgs []string

	cmd := &cobra.Command{
		Use:   "deploy [contract]",
		Short: "Deploy the contract and record it once confirmed",
		Long: `Deploy a compiled contract with the account from PRIVATE_KEY, wait for the
configured number of block confirmations and write the deployment record.

The record is only written after the confirmations are reached. Deploying
again overwrites the previous record.

Examples:
  notify-deploy deploy                                 # NotificationSystem on base-sepolia
  notify-deploy deploy --network base                  # Mainnet, asks for confirmation
  notify-deploy deploy --network base --yes            # Mainnet without prompt
  notify-deploy deploy MyContract --arg 0xabc... --arg 42`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if err := confirmMainnet(ctx, app, app.Config); err != nil {
				return err
			}

			params := usecase.DeployParams{ConstructorArgs: constructorArgs}
			if len(args) > 0 {
				params.ContractName = args[0]
			}

			renderer := render.NewDeployRenderer(cmd.OutOrStdout())
			renderer.RenderPreflight(app.Config.Network.Name, app.Config.Network.ChainID, app.Config.Confirmations)

			result, err := app.DeployContract.Run(ctx, params)
			if err != nil {
				return err
			}

			return renderer.Render(result)
		},
	}

	cmd.Flags().StringArrayVar(&constructorArgs, "arg", nil, "Constructor argument (repeat for each argument, in order)")
	cmd.Flags().Uint64("confirmations", config.DefaultConfirmations, "Block confirmations to wait for before recording")
	cmd.Flags().Duration("confirm-timeout", config.DefaultConfirmTimeout, "Maximum time to wait for confirmations")
	cmd.Flags().BoolP("yes", "y", false, "Skip the mainnet confirmation prompt")

	return cmd
}

// confirmMainnet asks before spending real funds. Testnets and --yes skip the prompt.
func confirmMainnet(ctx context.Context, a *app.App, cfg *domainconfig.RuntimeConfig) error {
	if !shouldConfirmDeploy(cfg) {
		return nil
	}
	if cfg.NonInteractive {
		return fmt.Errorf("refusing to deploy to %s in non-interactive mode without --yes", cfg.Network.Name)
	}

	ok, err := a.Selector.Confirm(ctx, fmt.Sprintf("Deploy to %s (chain %d) using real funds", cfg.Network.Name, cfg.Network.ChainID))
	if err != nil {
		return err
	}
	if !ok {
		return errDeployCancelled
	}
	return nil
}

// shouldConfirmDeploy reports whether the deploy needs an explicit go-ahead
func shouldConfirmDeploy(cfg *domainconfig.RuntimeConfig) bool {
	return cfg.Network != nil && !cfg.Network.Testnet && !cfg.AssumeYes
}
