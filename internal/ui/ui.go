package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the browser UI and blocks until it exits.
func Run(opts Options) error {
	model := NewModel(opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(opts.Context))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
