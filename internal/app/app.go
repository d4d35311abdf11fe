package app

import (
	"github.com/trebuchet-org/notify-deploy/internal/domain/config"
	"github.com/trebuchet-org/notify-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Selector usecase.InteractiveSelector

	// Use cases
	DeployContract   *usecase.DeployContract
	VerifyDeployment *usecase.VerifyDeployment
	ShowDeployment   *usecase.ShowDeployment
	ListNetworks     *usecase.ListNetworks
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	selector usecase.InteractiveSelector,
	deployContract *usecase.DeployContract,
	verifyDeployment *usecase.VerifyDeployment,
	showDeployment *usecase.ShowDeployment,
	listNetworks *usecase.ListNetworks,
) (*App, error) {
	return &App{
		Config:           cfg,
		Selector:         selector,
		DeployContract:   deployContract,
		VerifyDeployment: verifyDeployment,
		ShowDeployment:   showDeployment,
		ListNetworks:     listNetworks,
	}, nil
}
