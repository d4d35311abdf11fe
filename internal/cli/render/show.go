package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/notify-deploy/internal/usecase"
	"gopkg.in/yaml.v3"
)

// Output formats supported by the show command
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ShowRenderer renders the stored deployment record
type ShowRenderer struct {
	out    io.Writer
	format string
}

// NewShowRenderer creates a new show renderer
func NewShowRenderer(out io.Writer, format string) (*ShowRenderer, error) {
	switch format {
	case "", FormatText:
		format = FormatText
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unsupported output format %q (use text, json or yaml)", format)
	}
	return &ShowRenderer{out: out, format: format}, nil
}

// Render prints the record in the configured format
func (r *ShowRenderer) Render(result *usecase.ShowDeploymentResult) error {
	switch r.format {
	case FormatJSON:
		data, err := json.MarshalIndent(result.Record, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.out, string(data))
		return err

	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(result.Record); err != nil {
			return err
		}
		return enc.Close()
	}

	record := result.Record
	title := record.ContractName
	if title == "" {
		title = record.ContractAddress
	}
	fmt.Fprintf(r.out, "%s on %s\n", color.New(color.Bold).Sprint(title), color.New(color.FgCyan).Sprint(record.Network))
	fmt.Fprintln(r.out, renderKeyValues([]keyValue{
		{"Address", color.New(color.FgGreen).Sprint(record.ContractAddress)},
		{"Chain ID", fmt.Sprintf("%d", record.ChainID)},
		{"Deployer", record.Deployer},
		{"Deployed at", record.Timestamp},
		{"Block", fmt.Sprintf("%d", record.BlockNumber)},
		{"Transaction", record.TransactionHash},
		{"Gas used", record.GasUsed},
		{"Gas price", formatWei(record.GasPrice)},
		{"Constructor args", record.ConstructorArgs},
		{"Explorer", result.ExplorerURL},
		{"Record", result.RecordPath},
	}))
	return nil
}
