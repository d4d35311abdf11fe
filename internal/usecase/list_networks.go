package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/trebuchet-org/notify-deploy/internal/domain"
	"github.com/trebuchet-org/notify-deploy/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Check dials every network and compares the served chain ID
	Check bool
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
	Selected string
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Network *config.Network
	Checked bool
	Latency time.Duration
	Error   error
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	config   *config.RuntimeConfig
	resolver NetworkResolver
	dialer   ChainDialer
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, resolver NetworkResolver, dialer ChainDialer) *ListNetworks {
	return &ListNetworks{
		config:   cfg,
		resolver: resolver,
		dialer:   dialer,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	networks := uc.resolver.GetNetworks(ctx)

	statuses := make([]NetworkStatus, 0, len(networks))
	for _, network := range networks {
		status := NetworkStatus{Network: network}
		if params.Check {
			status.Checked = true
			status.Latency, status.Error = uc.probe(ctx, network)
		}
		statuses = append(statuses, status)
	}

	result := &ListNetworksResult{Networks: statuses}
	if uc.config.Network != nil {
		result.Selected = uc.config.Network.Name
	}
	return result, nil
}

func (uc *ListNetworks) probe(ctx context.Context, network *config.Network) (time.Duration, error) {
	start := time.Now()
	client, err := uc.dialer.Dial(ctx, network)
	if err != nil {
		return 0, err
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, err
	}
	if chainID != network.ChainID {
		return 0, fmt.Errorf("%w: expected %d, got %d", domain.ErrChainIDMismatch, network.ChainID, chainID)
	}
	return time.Since(start), nil
}
