// Package tui is a terminal manager for the browser's history and starred
// pages, sharing the store with the shell.
package tui

import (
	"neonshell/data"

	tea "github.com/charmbracelet/bubbletea"
)

type TUIConfig struct {
	Repository   data.BrowserRepository
	HistoryLimit int
}

// Run starts the TUI application
func Run(config TUIConfig) error {
	p := tea.NewProgram(
		initialModel(config),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

func initialModel(config TUIConfig) tea.Model {
	return newLibraryModel(config)
}
