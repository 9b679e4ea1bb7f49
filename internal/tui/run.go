package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"herodex/internal/dataset"
	"herodex/internal/options"
)

// Run starts the program and blocks until it exits.
func Run(ctx context.Context, data *dataset.Dataset, idx options.Index, opts Options) error {
	program := tea.NewProgram(New(data, idx, opts), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
