package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/notify-deploy/internal/usecase"
)

// DeployRenderer renders the outcome of a deploy run
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// RenderPreflight prints the target network before the transaction is sent
func (r *DeployRenderer) RenderPreflight(network string, chainID uint64, confirmations uint64) {
	fmt.Fprintf(r.out, "Deploying to %s (chain %d), waiting for %d confirmations\n",
		color.New(color.FgCyan).Sprint(network), chainID, confirmations)
}

// Render prints the deployment record and where it was saved
func (r *DeployRenderer) Render(result *usecase.DeployResult) error {
	record := result.Record

	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s deployed to %s", record.ContractName, record.Network)))
	fmt.Fprintln(r.out, renderKeyValues([]keyValue{
		{"Address", color.New(color.FgGreen, color.Bold).Sprint(record.ContractAddress)},
		{"Deployer", record.Deployer},
		{"Balance", usecase.FormatEther(result.Balance) + " ETH"},
		{"Transaction", record.TransactionHash},
		{"Block", fmt.Sprintf("%d", record.BlockNumber)},
		{"Gas used", record.GasUsed},
		{"Gas price", formatWei(record.GasPrice)},
		{"Record", result.RecordPath},
	}))

	if url := record.ExplorerCodeURL(result.Network.ExplorerURL); url != "" {
		fmt.Fprintf(r.out, "\nExplorer: %s\n", url)
	}
	fmt.Fprintf(r.out, "Verify with: %s\n", color.New(color.FgCyan).Sprintf("notify-deploy verify"))
	return nil
}
