package tui

import (
	"neonshell/data"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
)

type viewMode int

const (
	historyView viewMode = iota
	starredView
)

func (v viewMode) String() string {
	if v == starredView {
		return "Starred Pages"
	}
	return "History"
}

// Shared state across views
type sharedState struct {
	config       TUIConfig
	err          error
	width        int
	height       int
	glamourStyle string
}

func newSharedState(config TUIConfig) *sharedState {
	if config.HistoryLimit <= 0 {
		config.HistoryLimit = data.DefaultHistoryLimit
	}
	return &sharedState{
		config:       config,
		glamourStyle: markdownStyle(),
	}
}

// markdownStyle picks the glamour theme matching the terminal background.
func markdownStyle() string {
	if termenv.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

type historyLoadedMsg []data.HistoryEntry
type favoritesLoadedMsg []data.FavoriteEntry
type errorMsg struct{ err error }

// changedMsg reports a finished mutation; both lists are reloaded.
type changedMsg struct{ status string }

type statusMsg string

// confirmation is a destructive command waiting for y/n.
type confirmation struct {
	question string
	run      func() tea.Msg
}
