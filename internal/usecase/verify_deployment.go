package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/trebuchet-org/notify-deploy/internal/domain"
	"github.com/trebuchet-org/notify-deploy/internal/domain/config"
	"github.com/trebuchet-org/notify-deploy/internal/domain/models"
)

// VerificationStatus is the outcome of a successful verify run
type VerificationStatus string

const (
	StatusVerified        VerificationStatus = "verified"
	StatusAlreadyVerified VerificationStatus = "already-verified"
)

// VerifyDeployment publishes the source of the recorded deployment to the
// network's block explorer
type VerifyDeployment struct {
	config    *config.RuntimeConfig
	store     DeploymentStore
	networks  NetworkResolver
	contracts ContractRepository
	verifier  ContractVerifier
	progress  ProgressSink
	log       *slog.Logger
}

// NewVerifyDeployment creates a new verify deployment use case
func NewVerifyDeployment(
	cfg *config.RuntimeConfig,
	store DeploymentStore,
	networks NetworkResolver,
	contracts ContractRepository,
	verifier ContractVerifier,
	progress ProgressSink,
	log *slog.Logger,
) *VerifyDeployment {
	return &VerifyDeployment{
		config:    cfg,
		store:     store,
		networks:  networks,
		contracts: contracts,
		verifier:  verifier,
		progress:  progress,
		log:       log.With("component", "VerifyDeployment"),
	}
}

// VerifyResult contains the result of verification
type VerifyResult struct {
	Record       *models.DeploymentRecord
	Network      *config.Network
	ContractName string
	Status       VerificationStatus
	ExplorerURL  string
}

// Run verifies the deployment described by the record file. An explorer
// reporting the contract as already verified counts as success.
func (v *VerifyDeployment) Run(ctx context.Context) (*VerifyResult, error) {
	record, err := v.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrMissingArtifact) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMissingArtifact, err)
	}

	network, err := v.resolveNetwork(ctx, record)
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{
		Record:       record,
		Network:      network,
		ContractName: v.contractName(record),
		ExplorerURL:  record.ExplorerCodeURL(network.ExplorerURL),
	}

	req, err := v.buildRequest(ctx, record, network)
	if err != nil {
		return nil, err
	}

	v.log.Info("verifying", "contract", req.ContractName, "address", req.Address, "network", network.Name)
	v.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageVerifying,
		Message: fmt.Sprintf("Verifying %s on %s", result.ContractName, network.Name),
		Spinner: true,
	})

	err = v.verifier.Verify(ctx, req)
	v.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})

	switch {
	case err == nil:
		result.Status = StatusVerified
	case domain.IsAlreadyVerified(err):
		v.log.Info("contract already verified", "address", req.Address)
		result.Status = StatusAlreadyVerified
	case errors.Is(err, domain.ErrUnclassifiedVerification):
		return nil, err
	default:
		return nil, fmt.Errorf("%w: %w", domain.ErrUnclassifiedVerification, err)
	}

	return result, nil
}

// resolveNetwork prefers the recorded network name and falls back to the chain ID
func (v *VerifyDeployment) resolveNetwork(ctx context.Context, record *models.DeploymentRecord) (*config.Network, error) {
	network, err := v.networks.ResolveNetwork(ctx, record.Network)
	if err == nil {
		if network.ChainID != record.ChainID {
			return nil, fmt.Errorf("%w: record says chain %d, network %s is chain %d",
				domain.ErrChainIDMismatch, record.ChainID, network.Name, network.ChainID)
		}
		return network, nil
	}

	byChain, chainErr := v.networks.ResolveByChainID(ctx, record.ChainID)
	if chainErr != nil {
		return nil, err
	}
	v.log.Debug("resolved network by chain ID", "recorded", record.Network, "resolved", byChain.Name)
	return byChain, nil
}

func (v *VerifyDeployment) buildRequest(ctx context.Context, record *models.DeploymentRecord, network *config.Network) (*domain.VerificationRequest, error) {
	if network.ExplorerAPIURL == "" {
		return nil, fmt.Errorf("%w: no explorer API configured for %s", domain.ErrUnclassifiedVerification, network.Name)
	}
	if v.config.ExplorerAPIKey == "" {
		return nil, fmt.Errorf("%w: BASESCAN_API_KEY is not set", domain.ErrUnclassifiedVerification)
	}

	name := v.contractName(record)
	contract, err := v.contracts.GetContract(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load artifact for %s: %w", name, err)
	}

	buildInfo, err := v.contracts.GetBuildInfo(ctx, contract)
	if err != nil {
		return nil, fmt.Errorf("failed to load build info for %s: %w", name, err)
	}

	return &domain.VerificationRequest{
		Address:         record.ContractAddress,
		ChainID:         record.ChainID,
		ContractName:    contract.FullyQualifiedName(),
		CompilerVersion: buildInfo.CompilerVersion(),
		SourceJSON:      string(buildInfo.Input),
		ConstructorArgs: strings.TrimPrefix(record.ConstructorArgs, "0x"),
		APIURL:          network.ExplorerAPIURL,
		APIKey:          v.config.ExplorerAPIKey,
	}, nil
}

// contractName falls back to the configured contract for records without one
func (v *VerifyDeployment) contractName(record *models.DeploymentRecord) string {
	if record.ContractName != "" {
		return record.ContractName
	}
	return v.config.ContractName
}
