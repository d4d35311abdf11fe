package config

// ProjectFile represents the optional notify.toml in the project root
type ProjectFile struct {
	Deploy   DeploySection             `toml:"deploy"`
	Networks map[string]NetworkSection `toml:"networks"`
}

// DeploySection holds deployment defaults
type DeploySection struct {
	Contract       string `toml:"contract"`
	Confirmations  uint64 `toml:"confirmations"`
	ConfirmTimeout string `toml:"confirm_timeout"`
	Record         string `toml:"record"`
	Artifacts      string `toml:"artifacts"`
}

// NetworkSection overrides or adds a network.
// Zero values leave the built-in setting untouched.
type NetworkSection struct {
	RPCURL         string `toml:"rpc_url"`
	ChainID        uint64 `toml:"chain_id"`
	ExplorerURL    string `toml:"explorer_url"`
	ExplorerAPIURL string `toml:"explorer_api_url"`
	Testnet        *bool  `toml:"testnet"`
}
