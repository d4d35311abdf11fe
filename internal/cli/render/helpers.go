package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Capitalize first letter
	if len(message) > 0 {
		message = strings.ToUpper(message[:1]) + message[1:]
	}
	return color.New(color.FgRed).Sprintf("❌ %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// keyValue is one row of a details block
type keyValue struct {
	Key   string
	Value string
}

// renderKeyValues renders an indented, borderless two column table.
// Rows with an empty value are skipped.
func renderKeyValues(rows []keyValue) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingLeft:  "  ",
		PaddingRight: " ",
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, Colors: text.Colors{text.Faint}},
		{Number: 2, Align: text.AlignLeft},
	})

	for _, row := range rows {
		if row.Value == "" {
			continue
		}
		t.AppendRow(table.Row{row.Key + ":", row.Value})
	}
	return t.Render()
}

// formatWei renders a decimal wei string with a gwei hint
func formatWei(wei string) string {
	if wei == "" {
		return ""
	}
	var gwei float64
	if _, err := fmt.Sscan(wei, &gwei); err != nil {
		return wei + " wei"
	}
	return fmt.Sprintf("%s wei (%.4g gwei)", wei, gwei/1e9)
}
