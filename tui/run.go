package tui

import tea "github.com/charmbracelet/bubbletea"

func Run(cfg Config) error {
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
