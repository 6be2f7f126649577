package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neonshell/data"
)

func newTestModel(t *testing.T) (*libraryModel, *data.SqliteBrowserRepository) {
	t.Helper()
	store, err := data.OpenSqlite(filepath.Join(t.TempDir(), data.DatabaseFileName))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	base := time.Now().Add(-time.Hour)
	for i, url := range []string{"https://a.example", "https://b.example"} {
		store.Now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		_, err := store.RecordVisit(url, "Page "+url[8:9])
		require.NoError(t, err)
	}
	_, err = store.AddFavorite(data.FavoriteEntry{Url: "https://a.example", Title: "Alpha"})
	require.NoError(t, err)
	store.Now = time.Now

	m := newLibraryModel(TUIConfig{Repository: store})
	run(m, m.Init())
	return m, store
}

// run executes cmd and feeds the resulting messages back into m.
func run(m *libraryModel, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			run(m, c)
		}
		return
	}
	_, next := m.Update(msg)
	run(m, next)
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m *libraryModel, keys ...string) {
	for _, k := range keys {
		_, cmd := m.Update(key(k))
		run(m, cmd)
	}
}

func TestLoadsBothLists(t *testing.T) {
	m, _ := newTestModel(t)

	assert.False(t, m.loading)
	require.Len(t, m.history, 2)
	assert.Equal(t, "https://b.example", m.history[0].Url)
	require.Len(t, m.favorites, 1)

	view := m.View()
	assert.Contains(t, view, "Page b")
	assert.Contains(t, view, "History (2)")
	assert.Contains(t, view, "Starred Pages (1)")
}

func TestDeleteDeclined(t *testing.T) {
	m, store := newTestModel(t)

	press(m, "d")
	require.NotNil(t, m.pending)
	assert.Contains(t, m.View(), "(y/n)")

	press(m, "n")
	assert.Nil(t, m.pending)
	assert.Equal(t, "Cancelled", m.status)

	history, err := store.ListHistory(0)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestDeleteConfirmed(t *testing.T) {
	m, store := newTestModel(t)

	press(m, "j", "d", "y")

	history, err := store.ListHistory(0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "https://b.example", history[0].Url)
	assert.Len(t, m.history, 1)
	assert.Equal(t, "Deleted history entry", m.status)
	assert.Equal(t, 0, m.cursor)
}

func TestClearHistoryScopes(t *testing.T) {
	m, store := newTestModel(t)

	press(m, "c", "x")
	assert.False(t, m.choosingScope)
	assert.Nil(t, m.pending)

	press(m, "c", "3")
	require.NotNil(t, m.pending)
	assert.Contains(t, m.pending.question, "all browsing history")

	press(m, "y")
	history, err := store.ListHistory(0)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Equal(t, "Cleared 2 entries", m.status)
	assert.Contains(t, m.View(), "No history yet.")
}

func TestRemoveStarredPage(t *testing.T) {
	m, store := newTestModel(t)

	press(m, "tab")
	assert.Equal(t, starredView, m.mode)
	assert.Contains(t, m.View(), "Alpha")

	press(m, "d")
	require.NotNil(t, m.pending)
	assert.Contains(t, m.pending.question, "Alpha")
	press(m, "y")

	favorites, err := store.ListFavorites()
	require.NoError(t, err)
	assert.Empty(t, favorites)
	assert.Contains(t, m.View(), "No starred pages yet.")
}

func TestClearOnlyFromHistory(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "tab", "c")
	assert.False(t, m.choosingScope)
}

func TestExpandAndCollapse(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "enter")
	assert.True(t, m.expanded)
	assert.Contains(t, m.View(), "esc/q back")

	press(m, "esc")
	assert.False(t, m.expanded)
}

func TestCursorBounds(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "k")
	assert.Equal(t, 0, m.cursor)
	press(m, "G")
	assert.Equal(t, 1, m.cursor)
	press(m, "j")
	assert.Equal(t, 1, m.cursor)
	press(m, "g")
	assert.Equal(t, 0, m.cursor)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}
