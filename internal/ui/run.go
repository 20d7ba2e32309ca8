package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive scan screen and blocks until the user quits
func Run(opts Options) error {
	opts.applyDefaults()

	model := New(opts)
	defer model.Shutdown()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(opts.Context),
	)
	_, err := p.Run()
	return err
}
