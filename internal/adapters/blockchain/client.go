package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/notify-deploy/internal/domain"
	"github.com/trebuchet-org/notify-deploy/internal/usecase"
)

// Backend is the node API the client needs. Both *ethclient.Client and the
// simulated backend's client satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// Client implements usecase.ChainClient on top of a Backend
type Client struct {
	backend      Backend
	pollInterval time.Duration
	closer       func()
	log          *slog.Logger
}

// NewClient wraps backend. closer may be nil.
func NewClient(backend Backend, pollInterval time.Duration, closer func(), log *slog.Logger) *Client {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &Client{
		backend:      backend,
		pollInterval: pollInterval,
		closer:       closer,
		log:          log.With("component", "ChainClient"),
	}
}

// ChainID returns the chain ID served by the node
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	id, err := c.backend.ChainID(ctx)
	if err != nil {
		return 0, err
	}
	return id.Uint64(), nil
}

// BalanceAt returns the latest balance of address in wei
func (c *Client) BalanceAt(ctx context.Context, address common.Address) (*big.Int, error) {
	return c.backend.BalanceAt(ctx, address, nil)
}

// Deploy signs and sends the contract creation transaction
func (c *Client) Deploy(ctx context.Context, signer *domain.Signer, req *domain.DeployRequest) (*domain.PendingDeployment, error) {
	chainID, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	auth, err := bind.NewKeyedTransactorWithChainID(signer.Key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx

	address, tx, _, err := bind.DeployContract(auth, req.ABI, req.Bytecode, c.backend, req.Args...)
	if err != nil {
		return nil, &domain.DeploymentFailureError{Reason: err.Error()}
	}

	pending := &domain.PendingDeployment{
		Address: address,
		TxHash:  tx.Hash(),
	}
	if tx.Type() == types.LegacyTxType {
		pending.GasPrice = tx.GasPrice()
	}

	c.log.Debug("deployment transaction submitted", "tx_hash", tx.Hash().Hex(), "nonce", tx.Nonce(), "gas", tx.Gas())
	return pending, nil
}

// WaitForConfirmations polls until the transaction's block is `confirmations`
// deep, counting the inclusion block as the first. A reverted receipt is
// returned as soon as it is seen.
func (c *Client) WaitForConfirmations(ctx context.Context, txHash common.Hash, confirmations uint64) (*domain.DeploymentReceipt, error) {
	if confirmations == 0 {
		confirmations = 1
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.check(ctx, txHash, confirmations)
		if err != nil {
			return nil, err
		}
		if receipt != nil {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// check returns nil, nil while the transaction is pending or not deep enough.
// Transient RPC failures are logged and retried on the next tick.
func (c *Client) check(ctx context.Context, txHash common.Hash, confirmations uint64) (*domain.DeploymentReceipt, error) {
	receipt, err := c.backend.TransactionReceipt(ctx, txHash)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !errors.Is(err, ethereum.NotFound) {
			c.log.Debug("receipt lookup failed", "tx_hash", txHash.Hex(), "error", err)
		}
		return nil, nil
	}

	result := toDeploymentReceipt(receipt)
	if receipt.Status != types.ReceiptStatusSuccessful {
		return result, nil
	}

	head, err := c.backend.BlockNumber(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.Debug("block number lookup failed", "error", err)
		return nil, nil
	}

	if head < result.BlockNumber {
		return nil, nil
	}
	result.Confirmations = head - result.BlockNumber + 1
	c.log.Debug("waiting for confirmations", "tx_hash", txHash.Hex(), "have", result.Confirmations, "want", confirmations)
	if result.Confirmations < confirmations {
		return nil, nil
	}
	return result, nil
}

// Close releases the underlying connection
func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
	}
}

func toDeploymentReceipt(r *types.Receipt) *domain.DeploymentReceipt {
	out := &domain.DeploymentReceipt{
		TxHash:            r.TxHash,
		ContractAddress:   r.ContractAddress,
		GasUsed:           r.GasUsed,
		EffectiveGasPrice: r.EffectiveGasPrice,
		Status:            r.Status,
	}
	if r.BlockNumber != nil {
		out.BlockNumber = r.BlockNumber.Uint64()
	}
	return out
}

var _ usecase.ChainClient = (*Client)(nil)
