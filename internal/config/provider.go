package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/notify-deploy/internal/domain/config"
)

const (
	DefaultContractName   = "NotificationSystem"
	DefaultConfirmations  = 5
	DefaultConfirmTimeout = 10 * time.Minute
	DefaultPollInterval   = 2 * time.Second
	DefaultRecordFile     = "deployment.json"
	DefaultArtifactsDir   = "artifacts"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	return BuildRuntimeConfig(v, os.LookupEnv)
}

// BuildRuntimeConfig resolves the full runtime configuration once per process.
// Precedence: flags > NOTIFY_* env > notify.toml > defaults.
func BuildRuntimeConfig(v *viper.Viper, lookup EnvLookup) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}
	projectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	project, err := LoadProjectFile(projectRoot)
	if err != nil {
		return nil, err
	}

	configSource := "defaults"
	if project != nil {
		configSource = ProjectFileName
		applyProjectDefaults(v, project.Deploy)
	}

	privateKey, _ := lookup("PRIVATE_KEY")
	networks, err := ResolveNetworks(project, lookup, ResolveAccounts(privateKey))
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		RecordPath:     resolvePath(projectRoot, v.GetString("record")),
		ArtifactsDir:   resolvePath(projectRoot, v.GetString("artifacts")),
		Networks:       networks,
		ContractName:   v.GetString("contract"),
		Confirmations:  v.GetUint64("confirmations"),
		ConfirmTimeout: v.GetDuration("confirm_timeout"),
		PollInterval:   v.GetDuration("poll_interval"),
		ExplorerAPIKey: explorerAPIKey(lookup),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		AssumeYes:      v.GetBool("yes"),
		Timeout:        v.GetDuration("timeout"),
		ConfigSource:   configSource,
	}

	if cfg.Confirmations == 0 {
		return nil, fmt.Errorf("confirmations must be at least 1")
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	networkName := v.GetString("network")
	if networkName == "" {
		networkName = DefaultNetwork
	}
	network, err := SelectNetwork(networks, networkName)
	if err != nil {
		return nil, err
	}
	cfg.Network = network

	return cfg, nil
}

// explorerAPIKey prefers the Basescan key and falls back to a generic Etherscan key
func explorerAPIKey(lookup EnvLookup) string {
	for _, key := range []string{"BASESCAN_API_KEY", "ETHERSCAN_API_KEY"} {
		if v, ok := lookupNonEmpty(lookup, key); ok {
			return v
		}
	}
	return ""
}

func applyProjectDefaults(v *viper.Viper, deploy config.DeploySection) {
	if deploy.Contract != "" {
		v.SetDefault("contract", deploy.Contract)
	}
	if deploy.Confirmations != 0 {
		v.SetDefault("confirmations", deploy.Confirmations)
	}
	if deploy.ConfirmTimeout != "" {
		v.SetDefault("confirm_timeout", deploy.ConfirmTimeout)
	}
	if deploy.Record != "" {
		v.SetDefault("record", deploy.Record)
	}
	if deploy.Artifacts != "" {
		v.SetDefault("artifacts", deploy.Artifacts)
	}
}

func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// FindProjectRoot walks up from the current directory looking for a project
// marker (notify.toml, hardhat.config.js/ts or an artifacts directory).
// Falls back to the current directory.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	markers := []string{ProjectFileName, "hardhat.config.js", "hardhat.config.ts", DefaultArtifactsDir}
	for dir := cwd; ; {
		for _, marker := range markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("NOTIFY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("network", DefaultNetwork)
	v.SetDefault("contract", DefaultContractName)
	v.SetDefault("confirmations", DefaultConfirmations)
	v.SetDefault("confirm_timeout", DefaultConfirmTimeout)
	v.SetDefault("poll_interval", DefaultPollInterval)
	v.SetDefault("record", DefaultRecordFile)
	v.SetDefault("artifacts", DefaultArtifactsDir)
	v.SetDefault("timeout", "0s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil {
				panic(err)
			}
		})
	}

	return v
}
