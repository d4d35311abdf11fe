package render

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/trebuchet-org/notify-deploy/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders the configured networks as a table. The
// selected network is marked with an asterisk.
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	checked := lo.SomeBy(result.Networks, func(s usecase.NetworkStatus) bool { return s.Checked })
	title := cases.Title(language.English)

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false

	header := table.Row{"", "Network", "Chain ID", "Kind", "RPC", "Explorer", "Signer"}
	if checked {
		header = append(header, "Status")
	}
	t.AppendHeader(header)

	for _, status := range result.Networks {
		n := status.Network
		row := table.Row{
			lo.Ternary(n.Name == result.Selected, "*", ""),
			n.Name,
			n.ChainID,
			title.String(lo.Ternary(n.Testnet, "testnet", "mainnet")),
			fmt.Sprintf("%s (%s)", n.RPCURL, n.RPCSource),
			n.ExplorerURL,
			lo.Ternary(n.HasSigner(), color.New(color.FgGreen).Sprint("configured"), color.New(color.FgYellow).Sprint("none")),
		}
		if checked {
			row = append(row, r.statusCell(status))
		}
		t.AppendRow(row)
	}

	fmt.Fprintln(r.out, t.Render())
	return nil
}

func (r *NetworksRenderer) statusCell(status usecase.NetworkStatus) string {
	if status.Error != nil {
		return color.New(color.FgRed).Sprintf("❌ %v", status.Error)
	}
	return color.New(color.FgGreen).Sprintf("✅ %s", status.Latency.Round(time.Millisecond))
}
