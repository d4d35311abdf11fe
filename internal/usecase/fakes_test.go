package usecase

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/notify-deploy/internal/domain"
	"github.com/trebuchet-org/notify-deploy/internal/domain/config"
	"github.com/trebuchet-org/notify-deploy/internal/domain/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockStore struct {
	mu       sync.Mutex
	saved    []*models.DeploymentRecord
	saveFunc func(context.Context, *models.DeploymentRecord) error
	loadFunc func(context.Context) (*models.DeploymentRecord, error)
	path     string
}

func (m *mockStore) Save(ctx context.Context, record *models.DeploymentRecord) error {
	if m.saveFunc != nil {
		if err := m.saveFunc(ctx, record); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, record)
	return nil
}

func (m *mockStore) Load(ctx context.Context) (*models.DeploymentRecord, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx)
	}
	return nil, domain.ErrMissingArtifact
}

func (m *mockStore) Path() string {
	if m.path == "" {
		return "/project/deployment.json"
	}
	return m.path
}

type mockContracts struct {
	getFunc       func(context.Context, string) (*models.Contract, error)
	listFunc      func(context.Context) ([]*models.Contract, error)
	buildInfoFunc func(context.Context, *models.Contract) (*models.BuildInfo, error)
	calls         int
}

func (m *mockContracts) GetContract(ctx context.Context, name string) (*models.Contract, error) {
	m.calls++
	if m.getFunc != nil {
		return m.getFunc(ctx, name)
	}
	return nil, domain.ErrContractNotFound
}

func (m *mockContracts) ListContracts(ctx context.Context) ([]*models.Contract, error) {
	m.calls++
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockContracts) GetBuildInfo(ctx context.Context, contract *models.Contract) (*models.BuildInfo, error) {
	m.calls++
	if m.buildInfoFunc != nil {
		return m.buildInfoFunc(ctx, contract)
	}
	return nil, domain.ErrContractNotFound
}

type mockEncoder struct {
	buildFunc func(*models.Contract, []string) (*domain.DeployRequest, error)
}

func (m *mockEncoder) BuildDeployRequest(contract *models.Contract, args []string) (*domain.DeployRequest, error) {
	if m.buildFunc != nil {
		return m.buildFunc(contract, args)
	}
	return &domain.DeployRequest{ContractName: contract.Name, Bytecode: []byte{0x60, 0x80}}, nil
}

type mockSigners struct {
	signerFunc func(context.Context, *config.Network) (*domain.Signer, error)
}

func (m *mockSigners) DefaultSigner(ctx context.Context, network *config.Network) (*domain.Signer, error) {
	if m.signerFunc != nil {
		return m.signerFunc(ctx, network)
	}
	return &domain.Signer{Address: common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")}, nil
}

type mockDialer struct {
	client   ChainClient
	dialFunc func(context.Context, *config.Network) (ChainClient, error)
	dials    int
}

func (m *mockDialer) Dial(ctx context.Context, network *config.Network) (ChainClient, error) {
	m.dials++
	if m.dialFunc != nil {
		return m.dialFunc(ctx, network)
	}
	return m.client, nil
}

type mockClient struct {
	chainID     uint64
	balance     *big.Int
	deployFunc  func(context.Context, *domain.Signer, *domain.DeployRequest) (*domain.PendingDeployment, error)
	waitFunc    func(context.Context, common.Hash, uint64) (*domain.DeploymentReceipt, error)
	closed      bool
	waitedFor   uint64
	deployCalls int
}

func (m *mockClient) ChainID(context.Context) (uint64, error) {
	return m.chainID, nil
}

func (m *mockClient) BalanceAt(context.Context, common.Address) (*big.Int, error) {
	if m.balance == nil {
		return big.NewInt(0), nil
	}
	return m.balance, nil
}

func (m *mockClient) Deploy(ctx context.Context, signer *domain.Signer, req *domain.DeployRequest) (*domain.PendingDeployment, error) {
	m.deployCalls++
	if m.deployFunc != nil {
		return m.deployFunc(ctx, signer, req)
	}
	return &domain.PendingDeployment{
		Address: common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		TxHash:  common.HexToHash("0x01"),
	}, nil
}

func (m *mockClient) WaitForConfirmations(ctx context.Context, txHash common.Hash, confirmations uint64) (*domain.DeploymentReceipt, error) {
	m.waitedFor = confirmations
	if m.waitFunc != nil {
		return m.waitFunc(ctx, txHash, confirmations)
	}
	return &domain.DeploymentReceipt{
		TxHash:            txHash,
		ContractAddress:   common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		BlockNumber:       100,
		GasUsed:           21000,
		EffectiveGasPrice: big.NewInt(1_000_000),
		Status:            1,
		Confirmations:     confirmations,
	}, nil
}

func (m *mockClient) Close() {
	m.closed = true
}

type mockVerifier struct {
	verifyFunc func(context.Context, *domain.VerificationRequest) error
	requests   []*domain.VerificationRequest
}

func (m *mockVerifier) Verify(ctx context.Context, req *domain.VerificationRequest) error {
	m.requests = append(m.requests, req)
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, req)
	}
	return nil
}

type mockNetworks struct {
	networks map[string]*config.Network
}

func (m *mockNetworks) GetNetworks(context.Context) []*config.Network {
	out := make([]*config.Network, 0, len(m.networks))
	for _, name := range []string{"base", "base-sepolia"} {
		if n, ok := m.networks[name]; ok {
			out = append(out, n)
		}
	}
	return out
}

func (m *mockNetworks) ResolveNetwork(_ context.Context, name string) (*config.Network, error) {
	if n, ok := m.networks[name]; ok {
		return n, nil
	}
	return nil, domain.ErrNetworkNotFound
}

func (m *mockNetworks) ResolveByChainID(_ context.Context, chainID uint64) (*config.Network, error) {
	for _, n := range m.networks {
		if n.ChainID == chainID {
			return n, nil
		}
	}
	return nil, domain.ErrNetworkNotFound
}

type mockSelector struct {
	selectFunc func(context.Context, []*models.Contract, string) (*models.Contract, error)
}

func (m *mockSelector) SelectContract(ctx context.Context, contracts []*models.Contract, prompt string) (*models.Contract, error) {
	if m.selectFunc != nil {
		return m.selectFunc(ctx, contracts, prompt)
	}
	return contracts[0], nil
}

func (m *mockSelector) Confirm(context.Context, string) (bool, error) {
	return true, nil
}

type recordingProgress struct {
	NopProgress
	stages []ExecutionStage
}

func (r *recordingProgress) OnProgress(_ context.Context, event ProgressEvent) {
	r.stages = append(r.stages, event.Stage)
}

func testNetworks() map[string]*config.Network {
	return map[string]*config.Network{
		"base": {
			Name:           "base",
			ChainID:        8453,
			RPCURL:         "https://mainnet.base.org",
			ExplorerURL:    "https://basescan.org",
			ExplorerAPIURL: "https://api.etherscan.io/v2/api",
		},
		"base-sepolia": {
			Name:           "base-sepolia",
			ChainID:        84532,
			RPCURL:         "https://sepolia.base.org",
			ExplorerURL:    "https://sepolia.basescan.org",
			ExplorerAPIURL: "https://api.etherscan.io/v2/api",
			Testnet:        true,
			Accounts:       []string{"0x" + "11111111111111111111111111111111" + "11111111111111111111111111111111"},
		},
	}
}

func notificationSystem() *models.Contract {
	return &models.Contract{
		Name:         "NotificationSystem",
		SourceName:   "contracts/NotificationSystem.sol",
		ArtifactPath: "/project/artifacts/contracts/NotificationSystem.sol/NotificationSystem.json",
	}
}
