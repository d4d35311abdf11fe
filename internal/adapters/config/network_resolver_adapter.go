package config

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/trebuchet-org/notify-deploy/internal/config"
	"github.com/trebuchet-org/notify-deploy/internal/domain"
	domainconfig "github.com/trebuchet-org/notify-deploy/internal/domain/config"
	"github.com/trebuchet-org/notify-deploy/internal/usecase"
)

// NetworkResolverAdapter serves the networks resolved into the runtime config
type NetworkResolverAdapter struct {
	cfg *domainconfig.RuntimeConfig
}

// NewNetworkResolverAdapter creates a new adapter
func NewNetworkResolverAdapter(cfg *domainconfig.RuntimeConfig) *NetworkResolverAdapter {
	return &NetworkResolverAdapter{cfg: cfg}
}

// GetNetworks returns all configured networks sorted by name
func (a *NetworkResolverAdapter) GetNetworks(ctx context.Context) []*domainconfig.Network {
	networks := lo.Values(a.cfg.Networks)
	sort.Slice(networks, func(i, j int) bool {
		return networks[i].Name < networks[j].Name
	})
	return networks
}

// ResolveNetwork resolves a network name to its configuration
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, networkName string) (*domainconfig.Network, error) {
	return config.SelectNetwork(a.cfg.Networks, networkName)
}

// ResolveByChainID finds a configured network serving chainID
func (a *NetworkResolverAdapter) ResolveByChainID(ctx context.Context, chainID uint64) (*domainconfig.Network, error) {
	network, ok := config.NetworkByChainID(a.cfg.Networks, chainID)
	if !ok {
		return nil, fmt.Errorf("%w: no network with chain ID %d", domain.ErrNetworkNotFound, chainID)
	}
	return network, nil
}

// Ensure the adapter implements the interface
var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
