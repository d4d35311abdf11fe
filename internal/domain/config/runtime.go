package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is built once per process and injected into use cases
type RuntimeConfig struct {
	// Core settings
	ProjectRoot  string
	RecordPath   string // Absolute path of the deployment record
	ArtifactsDir string // Absolute path of the compiled artifacts

	// Network settings
	Network  *Network            // Selected network, nil if unresolved
	Networks map[string]*Network // All configured networks by name

	// Deploy settings
	ContractName   string
	Confirmations  uint64
	ConfirmTimeout time.Duration
	PollInterval   time.Duration

	// Verify settings
	ExplorerAPIKey string

	// Execution settings
	Debug          bool
	NonInteractive bool
	AssumeYes      bool
	Timeout        time.Duration

	// Config source tracking
	ConfigSource string // "notify.toml" or "defaults"
}

// Network represents a deployable chain
type Network struct {
	Name           string   `json:"name"`
	ChainID        uint64   `json:"chainId"`
	RPCURL         string   `json:"rpcUrl"`
	RPCEnv         string   `json:"rpcEnv,omitempty"`    // Env var that overrides RPCURL
	RPCSource      string   `json:"rpcSource,omitempty"` // "env", "notify.toml" or "default"
	Accounts       []string `json:"-"`
	ExplorerURL    string   `json:"explorerUrl,omitempty"`
	ExplorerAPIURL string   `json:"explorerApiUrl,omitempty"`
	Testnet        bool     `json:"testnet"`
}

// HasSigner reports whether a signing account is configured
func (n *Network) HasSigner() bool {
	return len(n.Accounts) > 0
}
