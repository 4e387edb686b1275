package interactive

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
)

// NetworkSelector lets the operator pick a network when none is configured
type NetworkSelector struct{}

// NewNetworkSelector creates a new network selector
func NewNetworkSelector() *NetworkSelector {
	return &NetworkSelector{}
}

// SelectNetwork selects a network name from the known endpoints
func (s *NetworkSelector) SelectNetwork(names []string) (string, error) {
	if len(names) == 0 {
		return "", fmt.Errorf("no networks configured")
	}
	if len(names) == 1 {
		return names[0], nil
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             "Select network",
		Items:             names,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(names),
	}

	_, selected, err := promptSelect.Run()
	if err != nil {
		return "", promptError(err)
	}
	return selected, nil
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}
