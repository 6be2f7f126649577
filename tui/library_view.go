package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"neonshell/data"
	"neonshell/services"
)

const linesPerItem = 3

type libraryModel struct {
	shared        *sharedState
	mode          viewMode
	history       []data.HistoryEntry
	favorites     []data.FavoriteEntry
	cursor        int
	expanded      bool
	viewport      viewport.Model
	ready         bool
	loading       bool
	choosingScope bool
	pending       *confirmation
	status        string
	quitting      bool
}

func newLibraryModel(config TUIConfig) *libraryModel {
	shared := newSharedState(config)
	vp := viewport.New(80, 20)
	return &libraryModel{
		shared:   shared,
		viewport: vp,
		loading:  true,
	}
}

func (m *libraryModel) Init() tea.Cmd {
	return tea.Batch(m.loadHistory(), m.loadFavorites())
}

func (m *libraryModel) loadHistory() tea.Cmd {
	return func() tea.Msg {
		history, err := m.shared.config.Repository.ListHistory(m.shared.config.HistoryLimit)
		if err != nil {
			return errorMsg{err}
		}
		return historyLoadedMsg(history)
	}
}

func (m *libraryModel) loadFavorites() tea.Cmd {
	return func() tea.Msg {
		favorites, err := m.shared.config.Repository.ListFavorites()
		if err != nil {
			return errorMsg{err}
		}
		return favoritesLoadedMsg(favorites)
	}
}

func (m *libraryModel) deleteHistoryEntry(id int64) func() tea.Msg {
	return func() tea.Msg {
		if _, err := m.shared.config.Repository.DeleteHistoryEntry(id); err != nil {
			return errorMsg{err}
		}
		return changedMsg{"Deleted history entry"}
	}
}

func (m *libraryModel) removeFavorite(url string) func() tea.Msg {
	return func() tea.Msg {
		if _, err := m.shared.config.Repository.RemoveFavorite(url); err != nil {
			return errorMsg{err}
		}
		return changedMsg{"Removed from favorites!"}
	}
}

func (m *libraryModel) clearHistory(scope data.ClearScope) func() tea.Msg {
	return func() tea.Msg {
		n, err := m.shared.config.Repository.ClearHistory(scope)
		if err != nil {
			return errorMsg{err}
		}
		return changedMsg{fmt.Sprintf("Cleared %d entries", n)}
	}
}

func copyURL(url string) tea.Cmd {
	return func() tea.Msg {
		if err := services.CopyText(url); err != nil {
			return statusMsg(fmt.Sprintf("Copy failed: %v", err))
		}
		return statusMsg("Copied " + url)
	}
}

func openURL(url string) tea.Cmd {
	return func() tea.Msg {
		if err := services.OpenExternal(url); err != nil {
			return statusMsg(fmt.Sprintf("Open failed: %v", err))
		}
		return statusMsg("Opened " + url)
	}
}

func (m *libraryModel) count() int {
	if m.mode == starredView {
		return len(m.favorites)
	}
	return len(m.history)
}

// selected returns the id, url and title under the cursor.
func (m *libraryModel) selected() (id int64, url string, title string, ok bool) {
	if m.cursor < 0 || m.cursor >= m.count() {
		return 0, "", "", false
	}
	if m.mode == starredView {
		f := m.favorites[m.cursor]
		return f.Id, f.Url, f.DisplayTitle(), true
	}
	h := m.history[m.cursor]
	return h.Id, h.Url, h.DisplayTitle(), true
}

func (m *libraryModel) clampCursor() {
	if m.cursor >= m.count() {
		m.cursor = m.count() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *libraryModel) ask(question string, run func() tea.Msg) {
	m.pending = &confirmation{question: question, run: run}
}

func (m *libraryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var vpCmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.loading {
			return m, nil
		}

		if m.pending != nil {
			switch msg.String() {
			case "y", "Y":
				run := m.pending.run
				m.pending = nil
				return m, run
			case "n", "N", "esc":
				m.pending = nil
				m.status = "Cancelled"
			}
			return m, nil
		}

		if m.choosingScope {
			m.choosingScope = false
			var scope data.ClearScope
			switch msg.String() {
			case "1":
				scope = data.ClearLast24Hours
			case "2":
				scope = data.ClearLast7Days
			case "3":
				scope = data.ClearAll
			default:
				m.status = "Cancelled"
				return m, nil
			}
			m.ask(fmt.Sprintf("Clear %s?", scope.Description()), m.clearHistory(scope))
			return m, nil
		}

		if m.expanded {
			switch msg.String() {
			case "esc", "q", "enter":
				m.expanded = false
				m.updateContent()
				m.scrollToSelection()
				return m, nil
			case "y":
				if _, url, _, ok := m.selected(); ok {
					return m, copyURL(url)
				}
				return m, nil
			case "o":
				if _, url, _, ok := m.selected(); ok {
					return m, openURL(url)
				}
				return m, nil
			}
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

		switch msg.String() {
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit

		case "tab":
			if m.mode == historyView {
				m.mode = starredView
			} else {
				m.mode = historyView
			}
			m.cursor = 0
			m.status = ""

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < m.count()-1 {
				m.cursor++
			}

		case "g":
			m.cursor = 0

		case "G":
			m.cursor = max(m.count()-1, 0)

		case "enter", "e":
			if _, _, _, ok := m.selected(); ok {
				m.expanded = true
			}

		case "d":
			id, url, title, ok := m.selected()
			if !ok {
				break
			}
			if m.mode == starredView {
				m.ask(fmt.Sprintf("Remove %q from favorites?", title), m.removeFavorite(url))
			} else {
				m.ask(fmt.Sprintf("Delete %q from history?", title), m.deleteHistoryEntry(id))
			}

		case "c":
			if m.mode == historyView {
				m.choosingScope = true
			}

		case "y":
			if _, url, _, ok := m.selected(); ok {
				return m, copyURL(url)
			}

		case "o":
			if _, url, _, ok := m.selected(); ok {
				return m, openURL(url)
			}

		case "r":
			m.loading = true
			return m, tea.Batch(m.loadHistory(), m.loadFavorites())
		}
		m.updateContent()
		m.scrollToSelection()

	case historyLoadedMsg:
		m.history = []data.HistoryEntry(msg)
		m.loading = false
		m.clampCursor()
		m.updateContent()
		m.scrollToSelection()

	case favoritesLoadedMsg:
		m.favorites = []data.FavoriteEntry(msg)
		m.clampCursor()
		m.updateContent()

	case changedMsg:
		m.status = msg.status
		return m, tea.Batch(m.loadHistory(), m.loadFavorites())

	case statusMsg:
		m.status = string(msg)

	case errorMsg:
		m.shared.err = msg.err
		m.loading = false

	case tea.WindowSizeMsg:
		m.shared.width = msg.Width
		m.shared.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-8)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 8
		}
		m.updateContent()
		m.scrollToSelection()
	}

	return m, vpCmd
}

func (m *libraryModel) scrollToSelection() {
	if m.expanded || m.count() == 0 {
		return
	}
	cursorLine := m.cursor * linesPerItem
	if cursorLine < m.viewport.YOffset {
		m.viewport.SetYOffset(cursorLine)
	}
	cursorBottom := cursorLine + linesPerItem
	if cursorBottom > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(max(cursorBottom-m.viewport.Height, 0))
	}
}

func (m *libraryModel) updateContent() {
	if m.expanded {
		m.viewport.SetContent(m.renderDetails())
		return
	}
	if m.count() == 0 {
		if m.mode == starredView {
			m.viewport.SetContent(dimStyle.Render("No starred pages yet."))
		} else {
			m.viewport.SetContent(dimStyle.Render("No history yet."))
		}
		return
	}
	m.viewport.SetContent(m.renderList())
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if width > 3 && len(runes) > width {
		return string(runes[:width-3]) + "..."
	}
	return s
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func (m *libraryModel) renderList() string {
	var b strings.Builder
	width := m.shared.width - 8

	for i := 0; i < m.count(); i++ {
		cursor := "  "
		style := itemStyle
		if i == m.cursor {
			cursor = "▶ "
			style = selectedItemStyle
		}

		var title, url string
		var when time.Time
		if m.mode == starredView {
			f := m.favorites[i]
			title, url, when = f.DisplayTitle(), f.Url, f.Timestamp
		} else {
			h := m.history[i]
			title, url, when = h.DisplayTitle(), h.Url, h.Timestamp
		}

		b.WriteString(style.Render(cursor + truncate(title, width)))
		b.WriteString("\n")
		b.WriteString(itemStyle.Render("  " + dimStyle.Render(formatTime(when)+"  "+truncate(url, width-18))))
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m *libraryModel) renderDetails() string {
	var md strings.Builder
	if m.mode == starredView {
		f := m.favorites[m.cursor]
		fmt.Fprintf(&md, "# %s\n\n", f.DisplayTitle())
		fmt.Fprintf(&md, "- **URL:** %s\n", f.Url)
		fmt.Fprintf(&md, "- **Starred:** %s\n", formatTime(f.Timestamp))
		if f.Favicon != "" {
			fmt.Fprintf(&md, "- **Icon:** %s\n", f.Favicon)
		}
	} else {
		h := m.history[m.cursor]
		fmt.Fprintf(&md, "# %s\n\n", h.DisplayTitle())
		fmt.Fprintf(&md, "- **URL:** %s\n", h.Url)
		fmt.Fprintf(&md, "- **Visited:** %s\n", formatTime(h.Timestamp))
	}

	rendered, err := glamour.Render(md.String(), m.shared.glamourStyle)
	if err != nil {
		return md.String()
	}
	return rendered
}

func (m *libraryModel) renderTabs() string {
	var tabs []string
	for _, v := range []viewMode{historyView, starredView} {
		label := fmt.Sprintf("%s (%d)", v, m.countFor(v))
		if v == m.mode {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return strings.Join(tabs, dimStyle.Render("  |  "))
}

func (m *libraryModel) countFor(v viewMode) int {
	if v == starredView {
		return len(m.favorites)
	}
	return len(m.history)
}

func (m *libraryModel) View() string {
	if m.quitting {
		return ""
	}
	if m.loading {
		return loadingStyle.Render("Loading library...")
	}
	if m.shared.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.shared.err))
	}

	var footer string
	switch {
	case m.pending != nil:
		footer = promptStyle.Render(m.pending.question + " (y/n)")
	case m.choosingScope:
		footer = promptStyle.Render("Clear history from: 1 last 24 hours • 2 last 7 days • 3 all time • esc cancel")
	case m.status != "":
		footer = statusStyle.Render(m.status)
	}

	help := "↑/k up • ↓/j down • tab switch • enter details • d delete • c clear history • y copy url • o open • r refresh • q quit"
	if m.expanded {
		help = "y copy url • o open • esc/q back"
	}

	return fmt.Sprintf(
		"%s\n%s\n\n%s\n%s\n%s",
		headerStyle.Render("🌆 neonshell library"),
		m.renderTabs(),
		m.viewport.View(),
		footer,
		helpStyle.Render(help),
	)
}
