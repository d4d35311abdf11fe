package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/notify-deploy/internal/app"
	"github.com/trebuchet-org/notify-deploy/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "notify-deploy",
		Short: "Deploy and verify the NotificationSystem contract on Base",
		Long: `notify-deploy deploys a compiled contract to Base or Base Sepolia, waits for
block confirmations, records the deployment in deployment.json and verifies the
source on Basescan.

Configuration is read from .env, NOTIFY_* environment variables and an optional
notify.toml in the project root.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsApp(cmd.Name()) {
				return nil
			}

			projectRoot, err := resolveProjectRoot(cmd)
			if err != nil {
				return err
			}

			// .env must be loaded before the runtime config reads PRIVATE_KEY
			config.LoadEnvFiles(projectRoot)

			v := config.SetupViper(cmd)
			v.Set("project_root", projectRoot)
			if isNonInteractive() {
				v.SetDefault("non_interactive", true)
			}

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				// Store cancel func to be called on command completion
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (base, base-sepolia)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().String("project-root", "", "Project root (defaults to the nearest directory with notify.toml, hardhat.config.* or artifacts/)")
	rootCmd.PersistentFlags().String("record", config.DefaultRecordFile, "Deployment record file")
	rootCmd.PersistentFlags().String("artifacts", config.DefaultArtifactsDir, "Compiled artifacts directory")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Overall timeout for the command (0 disables)")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Main commands
	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	verifyCmd := NewVerifyCmd()
	verifyCmd.GroupID = "main"
	rootCmd.AddCommand(verifyCmd)

	showCmd := NewShowCmd()
	showCmd.GroupID = "main"
	rootCmd.AddCommand(showCmd)

	// Management commands
	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	// Version command
	versionCmd := NewVersionCmd()
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// needsApp reports whether a command runs against the project configuration
func needsApp(cmdName string) bool {
	switch cmdName {
	case "version", "help", "completion", "notify-deploy":
		return false
	}
	return true
}

func resolveProjectRoot(cmd *cobra.Command) (string, error) {
	if f := cmd.Flag("project-root"); f != nil && f.Value.String() != "" {
		return f.Value.String(), nil
	}
	if root := os.Getenv("NOTIFY_PROJECT_ROOT"); root != "" {
		return root, nil
	}
	return config.FindProjectRoot()
}

// isNonInteractive checks if the environment is non-interactive
func isNonInteractive() bool {
	return os.Getenv("CI") == "true" ||
		os.Getenv("NO_COLOR") != ""
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
