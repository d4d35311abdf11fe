package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/notify-deploy/internal/domain/config"
	"github.com/trebuchet-org/notify-deploy/internal/domain/models"
	"github.com/trebuchet-org/notify-deploy/internal/usecase"
)

// ErrNonInteractive is returned when a prompt is needed but prompting is disabled
var ErrNonInteractive = errors.New("interactive prompt not available in non-interactive mode")

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectContract selects a contract from a list
func (s *SelectorAdapter) SelectContract(ctx context.Context, contracts []*models.Contract, prompt string) (*models.Contract, error) {
	if len(contracts) == 0 {
		return nil, fmt.Errorf("no contracts provided for selection")
	}

	// If only one match, return it directly
	if len(contracts) == 1 {
		return contracts[0], nil
	}

	// In non-interactive mode, we can't select
	if s.config.NonInteractive {
		return nil, fmt.Errorf("%w: pass the contract name explicitly", ErrNonInteractive)
	}

	options, keys := formatContractOptions(contracts)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, type to search, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(keys),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return contracts[index], nil
}

// Confirm asks a yes/no question. Declining is not an error.
func (s *SelectorAdapter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if s.config.NonInteractive {
		return false, ErrNonInteractive
	}

	confirm := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}

	if _, err := confirm.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("input cancelled: %w", err)
	}
	return true, nil
}

// formatContractOptions creates display strings for contract selection, and
// the plain "sourceName:Name" keys used for searching
func formatContractOptions(contracts []*models.Contract) (options []string, keys []string) {
	options = make([]string, len(contracts))
	keys = make([]string, len(contracts))
	for i, contract := range contracts {
		relPath := strings.TrimPrefix(contract.SourceName, "contracts/")

		contractName := color.New(color.FgWhite, color.Bold).Sprint(contract.Name)
		pathStr := color.New(color.FgBlue).Sprint(relPath)

		options[i] = fmt.Sprintf("%s (%s)", contractName, pathStr)
		keys[i] = contract.FullyQualifiedName()
	}
	return options, keys
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		// Convert to lowercase for case-insensitive search
		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		// First try simple substring match
		if strings.Contains(item, input) {
			return true
		}

		// Then try fuzzy match
		matches := fuzzy.Find(input, []string{item})
		return len(matches) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.InteractiveSelector = (*SelectorAdapter)(nil)
