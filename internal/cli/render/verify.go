package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/trebuchet-org/notify-deploy/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// VerifyRenderer handles rendering of verification results
type VerifyRenderer struct {
	out io.Writer
}

// NewVerifyRenderer creates a new verify renderer
func NewVerifyRenderer(out io.Writer) *VerifyRenderer {
	return &VerifyRenderer{out: out}
}

// Render prints the verification outcome and the explorer link
func (r *VerifyRenderer) Render(result *usecase.VerifyResult) error {
	status := cases.Title(language.English).String(strings.ReplaceAll(string(result.Status), "-", " "))

	switch result.Status {
	case usecase.StatusAlreadyVerified:
		fmt.Fprintln(r.out, color.New(color.FgYellow).Sprintf("✔ %s: %s was already verified", status, result.ContractName))
	default:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s: %s on %s", status, result.ContractName, result.Network.Name)))
	}

	fmt.Fprintln(r.out, renderKeyValues([]keyValue{
		{"Address", result.Record.ContractAddress},
		{"Network", fmt.Sprintf("%s (%d)", result.Network.Name, result.Network.ChainID)},
		{"Explorer", result.ExplorerURL},
	}))
	return nil
}
