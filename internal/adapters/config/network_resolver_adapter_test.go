package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/notify-deploy/internal/config"
	"github.com/trebuchet-org/notify-deploy/internal/domain"
	domainconfig "github.com/trebuchet-org/notify-deploy/internal/domain/config"
)

func TestNetworkResolverAdapter(t *testing.T) {
	ctx := context.Background()
	networks := config.BuiltinNetworks()
	networks["anvil"] = &domainconfig.Network{Name: "anvil", ChainID: 31337}
	a := NewNetworkResolverAdapter(&domainconfig.RuntimeConfig{Networks: networks})

	all := a.GetNetworks(ctx)
	require.Len(t, all, 3)
	assert.Equal(t, "anvil", all[0].Name)
	assert.Equal(t, "base", all[1].Name)
	assert.Equal(t, "base-sepolia", all[2].Name)

	n, err := a.ResolveNetwork(ctx, "base")
	require.NoError(t, err)
	assert.Equal(t, uint64(8453), n.ChainID)

	_, err = a.ResolveNetwork(ctx, "baseSepolia")
	assert.ErrorIs(t, err, domain.ErrNetworkNotFound)

	n, err = a.ResolveByChainID(ctx, 84532)
	require.NoError(t, err)
	assert.Equal(t, "base-sepolia", n.Name)

	_, err = a.ResolveByChainID(ctx, 10)
	assert.ErrorIs(t, err, domain.ErrNetworkNotFound)
}
