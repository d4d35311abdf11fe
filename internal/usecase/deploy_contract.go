package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"github.com/trebuchet-org/notify-deploy/internal/domain"
	"github.com/trebuchet-org/notify-deploy/internal/domain/config"
	"github.com/trebuchet-org/notify-deploy/internal/domain/models"
)

// DeployContract submits a contract creation, waits for confirmations and
// persists the deployment record
type DeployContract struct {
	config    *config.RuntimeConfig
	signers   SignerProvider
	dialer    ChainDialer
	contracts ContractRepository
	encoder   ConstructorEncoder
	store     DeploymentStore
	selector  InteractiveSelector
	progress  ProgressSink
	log       *slog.Logger
	now       func() time.Time
}

// NewDeployContract creates a new deploy contract use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	signers SignerProvider,
	dialer ChainDialer,
	contracts ContractRepository,
	encoder ConstructorEncoder,
	store DeploymentStore,
	selector InteractiveSelector,
	progress ProgressSink,
	log *slog.Logger,
) *DeployContract {
	return &DeployContract{
		config:    cfg,
		signers:   signers,
		dialer:    dialer,
		contracts: contracts,
		encoder:   encoder,
		store:     store,
		selector:  selector,
		progress:  progress,
		log:       log.With("component", "DeployContract"),
		now:       time.Now,
	}
}

// DeployParams contains the inputs of a deploy run
type DeployParams struct {
	ContractName    string   // Falls back to the configured contract, then to interactive selection
	ConstructorArgs []string // Raw values, coerced to the constructor's ABI types
}

// DeployResult contains the outcome of a deploy run
type DeployResult struct {
	Record     *models.DeploymentRecord
	Network    *config.Network
	Balance    *big.Int
	RecordPath string
}

// Run executes the deploy sequence. The record is only written once the
// transaction has reached the configured confirmation depth.
func (d *DeployContract) Run(ctx context.Context, params DeployParams) (*DeployResult, error) {
	network := d.config.Network
	if network == nil {
		return nil, fmt.Errorf("%w: no network selected", domain.ErrNetworkNotFound)
	}

	d.progress.OnProgress(ctx, ProgressEvent{Stage: StageResolving, Message: "Resolving signer"})
	signer, err := d.signers.DefaultSigner(ctx, network)
	if err != nil {
		return nil, err
	}

	contract, err := d.resolveContract(ctx, params.ContractName)
	if err != nil {
		return nil, err
	}

	req, err := d.encoder.BuildDeployRequest(contract, params.ConstructorArgs)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare %s deployment: %w", contract.Name, err)
	}

	client, err := d.dialer.Dial(ctx, network)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", network.Name, err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if chainID != network.ChainID {
		return nil, fmt.Errorf("%w: %s expects %d, RPC serves %d", domain.ErrChainIDMismatch, network.Name, network.ChainID, chainID)
	}

	d.log.Info("deploying", "contract", contract.Name, "network", network.Name, "deployer", signer.Address.Hex())

	// Informational only, a low balance never blocks the deployment
	balance, err := client.BalanceAt(ctx, signer.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance of %s: %w", signer.Address.Hex(), err)
	}
	d.log.Info("deployer balance", "address", signer.Address.Hex(), "eth", FormatEther(balance))

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageSubmitting,
		Message: fmt.Sprintf("Deploying %s to %s", contract.Name, network.Name),
		Spinner: true,
	})
	pending, err := client.Deploy(ctx, signer, req)
	if err != nil {
		if errors.Is(err, domain.ErrDeploymentFailure) {
			return nil, err
		}
		return nil, &domain.DeploymentFailureError{Reason: err.Error()}
	}
	d.log.Info("deployment transaction sent", "tx_hash", pending.TxHash.Hex(), "address", pending.Address.Hex())

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageConfirming,
		Message: fmt.Sprintf("Waiting for %d block confirmations", d.config.Confirmations),
		Spinner: true,
	})
	receipt, err := d.waitForConfirmations(ctx, client, pending.TxHash)
	if err != nil {
		return nil, err
	}

	record := d.buildRecord(network, contract, signer.Address, pending, receipt, req)

	d.progress.OnProgress(ctx, ProgressEvent{Stage: StageRecording, Message: "Saving deployment record"})
	if err := d.store.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save deployment record: %w", err)
	}
	d.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})

	return &DeployResult{
		Record:     record,
		Network:    network,
		Balance:    balance,
		RecordPath: d.store.Path(),
	}, nil
}

// waitForConfirmations bounds the confirmation wait with the configured timeout
func (d *DeployContract) waitForConfirmations(ctx context.Context, client ChainClient, txHash common.Hash) (*domain.DeploymentReceipt, error) {
	waitCtx := ctx
	if d.config.ConfirmTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, d.config.ConfirmTimeout)
		defer cancel()
	}

	receipt, err := client.WaitForConfirmations(waitCtx, txHash, d.config.Confirmations)
	if err != nil {
		if ctx.Err() == nil && errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
			return nil, &domain.TransactionTimeoutError{
				TxHash:        txHash.Hex(),
				Confirmations: d.config.Confirmations,
				Timeout:       d.config.ConfirmTimeout,
			}
		}
		return nil, err
	}

	if receipt.Status != 1 {
		return nil, &domain.DeploymentFailureError{TxHash: txHash.Hex(), Status: receipt.Status}
	}

	return receipt, nil
}

func (d *DeployContract) buildRecord(
	network *config.Network,
	contract *models.Contract,
	deployer common.Address,
	pending *domain.PendingDeployment,
	receipt *domain.DeploymentReceipt,
	req *domain.DeployRequest,
) *models.DeploymentRecord {
	address := receipt.ContractAddress
	if address == (common.Address{}) {
		address = pending.Address
	}

	record := &models.DeploymentRecord{
		Network:         network.Name,
		ContractName:    contract.Name,
		ContractAddress: address.Hex(),
		Deployer:        deployer.Hex(),
		ChainID:         network.ChainID,
		Timestamp:       models.FormatTimestamp(d.now()),
		BlockNumber:     receipt.BlockNumber,
		TransactionHash: receipt.TxHash.Hex(),
		GasUsed:         fmt.Sprintf("%d", receipt.GasUsed),
	}

	switch {
	case receipt.EffectiveGasPrice != nil:
		record.GasPrice = receipt.EffectiveGasPrice.String()
	case pending.GasPrice != nil:
		record.GasPrice = pending.GasPrice.String()
	}

	if len(req.EncodedArgs) > 0 {
		record.ConstructorArgs = "0x" + common.Bytes2Hex(req.EncodedArgs)
	}

	return record
}

// resolveContract picks the contract to deploy: explicit name, configured
// default, or an interactive choice among the compiled artifacts
func (d *DeployContract) resolveContract(ctx context.Context, name string) (*models.Contract, error) {
	if name == "" {
		name = d.config.ContractName
	}
	if name != "" {
		return d.contracts.GetContract(ctx, name)
	}

	contracts, err := d.contracts.ListContracts(ctx)
	if err != nil {
		return nil, err
	}
	if len(contracts) == 0 {
		return nil, fmt.Errorf("%w: no deployable artifacts in %s", domain.ErrContractNotFound, d.config.ArtifactsDir)
	}
	return d.selector.SelectContract(ctx, contracts, "Select contract to deploy")
}

// FormatEther renders a wei amount in ETH without losing precision
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	sign := ""
	abs := new(big.Int).Set(wei)
	if abs.Sign() < 0 {
		sign = "-"
		abs.Neg(abs)
	}

	whole, frac := new(big.Int).QuoRem(abs, big.NewInt(params.Ether), new(big.Int))
	if frac.Sign() == 0 {
		return sign + whole.String()
	}
	fracStr := strings.TrimRight(fmt.Sprintf("%018s", frac.String()), "0")
	return fmt.Sprintf("%s%s.%s", sign, whole.String(), fracStr)
}
