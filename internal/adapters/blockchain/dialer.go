package blockchain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/notify-deploy/internal/domain/config"
	"github.com/trebuchet-org/notify-deploy/internal/usecase"
)

// Dialer connects to network RPC endpoints with ethclient
type Dialer struct {
	cfg *config.RuntimeConfig
	log *slog.Logger
}

// NewDialer creates a new dialer
func NewDialer(cfg *config.RuntimeConfig, log *slog.Logger) *Dialer {
	return &Dialer{cfg: cfg, log: log}
}

// Dial opens a connection to the network's RPC URL
func (d *Dialer) Dial(ctx context.Context, network *config.Network) (usecase.ChainClient, error) {
	if network.RPCURL == "" {
		return nil, fmt.Errorf("no RPC URL configured for %s (set %s)", network.Name, network.RPCEnv)
	}

	client, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	d.log.Debug("connected", "network", network.Name, "rpc_source", network.RPCSource)
	return NewClient(client, d.cfg.PollInterval, client.Close, d.log), nil
}

var _ usecase.ChainDialer = (*Dialer)(nil)
