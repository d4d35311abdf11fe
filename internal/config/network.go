package config

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/trebuchet-org/notify-deploy/internal/domain"
	"github.com/trebuchet-org/notify-deploy/internal/domain/config"
)

const (
	// DefaultNetwork is used when no --network is given
	DefaultNetwork = "base-sepolia"

	rpcSourceEnv     = "env"
	rpcSourceProject = ProjectFileName
	rpcSourceDefault = "default"

	// etherscanV2API serves Base and Base Sepolia, selected by chainid
	etherscanV2API = "https://api.etherscan.io/v2/api"
)

// BuiltinNetworks returns the networks known without any project configuration
func BuiltinNetworks() map[string]*config.Network {
	return map[string]*config.Network{
		"base": {
			Name:           "base",
			ChainID:        8453,
			RPCURL:         "https://mainnet.base.org",
			RPCEnv:         "BASE_MAINNET_RPC_URL",
			ExplorerURL:    "https://basescan.org",
			ExplorerAPIURL: etherscanV2API,
		},
		"base-sepolia": {
			Name:           "base-sepolia",
			ChainID:        84532,
			RPCURL:         "https://sepolia.base.org",
			RPCEnv:         "BASE_SEPOLIA_RPC_URL",
			ExplorerURL:    "https://sepolia.basescan.org",
			ExplorerAPIURL: etherscanV2API,
			Testnet:        true,
		},
	}
}

// ResolveNetworks merges built-in networks with project overrides and the
// environment, and attaches the same account list to every network.
func ResolveNetworks(project *config.ProjectFile, lookup EnvLookup, accounts []string) (map[string]*config.Network, error) {
	networks := BuiltinNetworks()
	for _, n := range networks {
		n.RPCSource = rpcSourceDefault
	}

	if project != nil {
		// Deterministic order keeps error messages stable
		names := lo.Keys(project.Networks)
		sort.Strings(names)
		for _, name := range names {
			section := project.Networks[name]
			n, exists := networks[name]
			if !exists {
				if section.ChainID == 0 || section.RPCURL == "" {
					return nil, fmt.Errorf("network %q in %s needs both rpc_url and chain_id", name, ProjectFileName)
				}
				n = &config.Network{Name: name, RPCEnv: GenerateEnvVarName(name)}
				networks[name] = n
			}
			applyNetworkSection(n, section, lookup)
		}
	}

	for _, n := range networks {
		if url, ok := lookupNonEmpty(lookup, n.RPCEnv); ok {
			n.RPCURL = url
			n.RPCSource = rpcSourceEnv
		}
		n.Accounts = accounts
	}

	return networks, nil
}

func applyNetworkSection(n *config.Network, section config.NetworkSection, lookup EnvLookup) {
	if section.RPCURL != "" {
		if envVar, ok := DetectEnvVar(section.RPCURL); ok && n.RPCEnv == "" {
			n.RPCEnv = envVar
		}
		if url := expandEnv(section.RPCURL, lookup); url != "" {
			n.RPCURL = url
			n.RPCSource = rpcSourceProject
		}
	}
	if section.ChainID != 0 {
		n.ChainID = section.ChainID
	}
	if section.ExplorerURL != "" {
		n.ExplorerURL = expandEnv(section.ExplorerURL, lookup)
	}
	if section.ExplorerAPIURL != "" {
		n.ExplorerAPIURL = expandEnv(section.ExplorerAPIURL, lookup)
	}
	if section.Testnet != nil {
		n.Testnet = *section.Testnet
	}
}

// SelectNetwork looks up a network by name
func SelectNetwork(networks map[string]*config.Network, name string) (*config.Network, error) {
	n, ok := networks[name]
	if !ok {
		available := lo.Keys(networks)
		sort.Strings(available)
		return nil, fmt.Errorf("%w: %q (available: %v)", domain.ErrNetworkNotFound, name, available)
	}
	return n, nil
}

// NetworkByChainID finds the first network (by name) serving chainID
func NetworkByChainID(networks map[string]*config.Network, chainID uint64) (*config.Network, bool) {
	names := lo.Keys(networks)
	sort.Strings(names)
	for _, name := range names {
		if networks[name].ChainID == chainID {
			return networks[name], true
		}
	}
	return nil, false
}
