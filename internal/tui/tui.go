package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// RunLanding starts the landing screen and blocks until the user quits
func RunLanding(opts Options) error {
	model := NewLandingModel(opts)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
