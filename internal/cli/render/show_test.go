package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/notify-deploy/internal/domain/config"
	"github.com/trebuchet-org/notify-deploy/internal/domain/models"
	"github.com/trebuchet-org/notify-deploy/internal/usecase"
	"gopkg.in/yaml.v3"
)

func showResult() *usecase.ShowDeploymentResult {
	return &usecase.ShowDeploymentResult{
		Record: &models.DeploymentRecord{
			Network:         "base-sepolia",
			ContractName:    "NotificationSystem",
			ContractAddress: "0x5FbDB2315678afecb367f032d93F642f64180aa3",
			Deployer:        "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
			ChainID:         84532,
			Timestamp:       "2026-10-17T09:30:00.000Z",
			BlockNumber:     1234,
			TransactionHash: "0x01",
			GasUsed:         "812345",
			GasPrice:        "1500000000",
		},
		RecordPath:  "/project/deployment.json",
		ExplorerURL: "https://sepolia.basescan.org/address/0x5FbDB2315678afecb367f032d93F642f64180aa3#code",
	}
}

func TestShowRenderer(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		r, err := NewShowRenderer(&out, "")
		require.NoError(t, err)
		require.NoError(t, r.Render(showResult()))

		s := out.String()
		assert.Contains(t, s, "NotificationSystem on base-sepolia")
		assert.Contains(t, s, "0x5FbDB2315678afecb367f032d93F642f64180aa3")
		assert.Contains(t, s, "1500000000 wei (1.5 gwei)")
		assert.Contains(t, s, "#code")
		assert.NotContains(t, s, "Constructor args")
	})

	t.Run("record without contract name", func(t *testing.T) {
		result := showResult()
		result.Record.ContractName = ""

		var out bytes.Buffer
		r, err := NewShowRenderer(&out, "")
		require.NoError(t, err)
		require.NoError(t, r.Render(result))
		assert.Contains(t, out.String(), "0x5FbDB2315678afecb367f032d93F642f64180aa3 on base-sepolia")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		r, err := NewShowRenderer(&out, FormatJSON)
		require.NoError(t, err)
		require.NoError(t, r.Render(showResult()))

		var decoded models.DeploymentRecord
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, *showResult().Record, decoded)
	})

	t.Run("yaml", func(t *testing.T) {
		var out bytes.Buffer
		r, err := NewShowRenderer(&out, FormatYAML)
		require.NoError(t, err)
		require.NoError(t, r.Render(showResult()))

		assert.Contains(t, out.String(), "contractAddress:")
		assert.Contains(t, out.String(), "chainId: 84532")
		var decoded models.DeploymentRecord
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, *showResult().Record, decoded)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := NewShowRenderer(&bytes.Buffer{}, "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"xml"`)
	})
}

func TestVerifyRenderer(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	result := &usecase.VerifyResult{
		Record:       &models.DeploymentRecord{ContractAddress: "0x5FbDB2315678afecb367f032d93F642f64180aa3"},
		Network:      &config.Network{Name: "base-sepolia", ChainID: 84532},
		ContractName: "NotificationSystem",
		Status:       usecase.StatusAlreadyVerified,
		ExplorerURL:  "https://sepolia.basescan.org/address/0x5FbDB2315678afecb367f032d93F642f64180aa3#code",
	}

	var out bytes.Buffer
	require.NoError(t, NewVerifyRenderer(&out).Render(result))
	assert.Contains(t, out.String(), "Already Verified: NotificationSystem was already verified")
	assert.Contains(t, out.String(), "#code")
}

func TestNetworksRenderer(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	result := &usecase.ListNetworksResult{
		Selected: "base-sepolia",
		Networks: []usecase.NetworkStatus{
			{Network: &config.Network{Name: "base", ChainID: 8453, RPCURL: "https://mainnet.base.org", RPCSource: "default"}, Checked: true, Error: errors.New("connection refused")},
			{Network: &config.Network{Name: "base-sepolia", ChainID: 84532, RPCURL: "https://sepolia.base.org", RPCSource: "env", Testnet: true, Accounts: []string{"0xkey"}}, Checked: true},
		},
	}

	var out bytes.Buffer
	require.NoError(t, NewNetworksRenderer(&out).RenderNetworksList(result))

	s := out.String()
	assert.Contains(t, s, "STATUS")
	assert.Contains(t, s, "Mainnet")
	assert.Contains(t, s, "Testnet")
	assert.Contains(t, s, "https://sepolia.base.org (env)")
	assert.Contains(t, s, "connection refused")
	assert.Contains(t, s, "configured")

	out.Reset()
	require.NoError(t, NewNetworksRenderer(&out).RenderNetworksList(&usecase.ListNetworksResult{}))
	assert.Equal(t, "No networks configured\n", out.String())
}

func TestFormatWei(t *testing.T) {
	assert.Equal(t, "", formatWei(""))
	assert.Equal(t, "1000000000 wei (1 gwei)", formatWei("1000000000"))
	assert.Equal(t, "abc wei", formatWei("abc"))
}
