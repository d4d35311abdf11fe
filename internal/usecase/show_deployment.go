package usecase

import (
	"context"

	"github.com/trebuchet-org/notify-deploy/internal/domain/config"
	"github.com/trebuchet-org/notify-deploy/internal/domain/models"
)

// ShowDeploymentResult is the loaded record plus the explorer link for it
type ShowDeploymentResult struct {
	Record      *models.DeploymentRecord
	RecordPath  string
	Network     *config.Network // nil when the recorded network is not configured
	ExplorerURL string
}

// ShowDeployment is the use case for showing the recorded deployment
type ShowDeployment struct {
	store    DeploymentStore
	networks NetworkResolver
}

// NewShowDeployment creates a new ShowDeployment use case
func NewShowDeployment(store DeploymentStore, networks NetworkResolver) *ShowDeployment {
	return &ShowDeployment{
		store:    store,
		networks: networks,
	}
}

// Run loads the record. Explorer details are best-effort.
func (uc *ShowDeployment) Run(ctx context.Context) (*ShowDeploymentResult, error) {
	record, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &ShowDeploymentResult{
		Record:     record,
		RecordPath: uc.store.Path(),
	}

	network, err := uc.networks.ResolveNetwork(ctx, record.Network)
	if err != nil {
		network, err = uc.networks.ResolveByChainID(ctx, record.ChainID)
	}
	if err == nil {
		result.Network = network
		result.ExplorerURL = record.ExplorerCodeURL(network.ExplorerURL)
	}

	return result, nil
}
