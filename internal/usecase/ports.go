package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/notify-deploy/internal/domain"
	"github.com/trebuchet-org/notify-deploy/internal/domain/config"
	"github.com/trebuchet-org/notify-deploy/internal/domain/models"
)

// DeploymentStore persists the deployment record
type DeploymentStore interface {
	// Save replaces the record wholesale
	Save(ctx context.Context, record *models.DeploymentRecord) error
	// Load returns domain.ErrMissingArtifact when the record is absent or unreadable
	Load(ctx context.Context) (*models.DeploymentRecord, error)
	Path() string
}

// ContractRepository provides access to compiled contracts
type ContractRepository interface {
	GetContract(ctx context.Context, name string) (*models.Contract, error)
	ListContracts(ctx context.Context) ([]*models.Contract, error)
	GetBuildInfo(ctx context.Context, contract *models.Contract) (*models.BuildInfo, error)
}

// ConstructorEncoder turns CLI string arguments into a deploy request
type ConstructorEncoder interface {
	BuildDeployRequest(contract *models.Contract, args []string) (*domain.DeployRequest, error)
}

// SignerProvider resolves the signing account for a network
type SignerProvider interface {
	// DefaultSigner returns domain.ErrAuthentication when no usable key is configured
	DefaultSigner(ctx context.Context, network *config.Network) (*domain.Signer, error)
}

// ChainDialer opens a connection to a network's RPC endpoint
type ChainDialer interface {
	Dial(ctx context.Context, network *config.Network) (ChainClient, error)
}

// ChainClient is the subset of node operations the deploy runner needs
type ChainClient interface {
	ChainID(ctx context.Context) (uint64, error)
	BalanceAt(ctx context.Context, address common.Address) (*big.Int, error)
	Deploy(ctx context.Context, signer *domain.Signer, req *domain.DeployRequest) (*domain.PendingDeployment, error)
	// WaitForConfirmations blocks until the transaction is mined and has the
	// given number of confirmations, or ctx is done
	WaitForConfirmations(ctx context.Context, txHash common.Hash, confirmations uint64) (*domain.DeploymentReceipt, error)
	Close()
}

// ContractVerifier handles contract verification
type ContractVerifier interface {
	// Verify returns an error that satisfies domain.IsAlreadyVerified when the
	// explorer already has the source
	Verify(ctx context.Context, req *domain.VerificationRequest) error
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []*config.Network
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
	ResolveByChainID(ctx context.Context, chainID uint64) (*config.Network, error)
}

// InteractiveSelector handles operator prompts
type InteractiveSelector interface {
	SelectContract(ctx context.Context, contracts []*models.Contract, prompt string) (*models.Contract, error)
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Progress tracking interfaces

// ExecutionStage represents a stage of a deploy run
type ExecutionStage string

const (
	StageResolving  ExecutionStage = "Resolving"
	StageSubmitting ExecutionStage = "Submitting"
	StageConfirming ExecutionStage = "Confirming"
	StageRecording  ExecutionStage = "Recording"
	StageVerifying  ExecutionStage = "Verifying"
	StageCompleted  ExecutionStage = "Completed"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   ExecutionStage
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
