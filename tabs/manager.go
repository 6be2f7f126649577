package tabs

import (
	"errors"
	"fmt"
	"io"

	"neonshell/logger"
	"neonshell/navigation"
)

var ErrNoSuchTab = errors.New("no such tab")

type Config struct {
	NewView EngineFactory
	// HomeURL returns the current home page URL. It is called on every use so
	// favorites and background changes are picked up.
	HomeURL func() string
	Store   Store
	View    View
}

// Manager keeps the ordered list of tabs and which one is active. It always
// holds at least one tab. It is not safe for concurrent use; all calls are
// expected on the UI goroutine.
type Manager struct {
	sessions []*Session
	active   int
	newView  EngineFactory
	homeURL  func() string
	store    Store
	view     View
}

// NewManager creates the manager with a single tab on the home page.
func NewManager(cfg Config) *Manager {
	m := &Manager{
		newView: cfg.NewView,
		homeURL: cfg.HomeURL,
		store:   cfg.Store,
		view:    cfg.View,
	}
	m.OpenTab("")
	return m
}

func (m *Manager) Count() int       { return len(m.sessions) }
func (m *Manager) ActiveIndex() int { return m.active }
func (m *Manager) Active() *Session { return m.sessions[m.active] }

// IndexOf returns the index of the session with the given id, or -1.
func (m *Manager) IndexOf(id string) int {
	for i, s := range m.sessions {
		if s.id == id {
			return i
		}
	}
	return -1
}

// OpenTab appends a tab, makes it active and loads url. An empty url opens
// the home page.
func (m *Manager) OpenTab(url string) *Session {
	s := newSession(m.newView)
	m.sessions = append(m.sessions, s)
	m.active = len(m.sessions) - 1
	if url == "" {
		m.loadHome(s)
	} else {
		s.setZoom(DefaultZoom)
		s.view.Navigate(url)
	}
	m.publishTabs()
	m.refreshIndicators()
	return s
}

// CloseTab removes the tab at index. The last tab is never removed; it is
// sent back to the home page instead, keeping its view and history.
func (m *Manager) CloseTab(index int) error {
	if index < 0 || index >= len(m.sessions) {
		return fmt.Errorf("%w: %d", ErrNoSuchTab, index)
	}
	closed := m.sessions[index]

	if len(m.sessions) == 1 {
		closed.label = DefaultLabel
		m.loadHome(closed)
		m.publishTabs()
		m.refreshIndicators()
		return nil
	}

	if c, ok := closed.view.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Debug.Printf("closing view %s: %v", closed.id, err)
		}
	}

	m.sessions = append(m.sessions[:index], m.sessions[index+1:]...)
	switch {
	case m.active > index:
		m.active--
	case m.active >= len(m.sessions):
		m.active = len(m.sessions) - 1
	}
	m.publishTabs()
	m.refreshIndicators()
	return nil
}

func (m *Manager) Activate(index int) error {
	if index < 0 || index >= len(m.sessions) {
		return fmt.Errorf("%w: %d", ErrNoSuchTab, index)
	}
	m.active = index
	m.publishTabs()
	m.refreshIndicators()
	return nil
}

func (m *Manager) Back()    { m.Active().view.GoBack() }
func (m *Manager) Forward() { m.Active().view.GoForward() }
func (m *Manager) Reload()  { m.Active().view.Reload() }

// Home loads the home page in the active tab at the home zoom level.
func (m *Manager) Home() {
	m.loadHome(m.Active())
	m.refreshIndicators()
}

// Navigate loads url in the active tab. Home URLs get the home zoom.
func (m *Manager) Navigate(url string) {
	s := m.Active()
	if navigation.IsHomeURL(url) {
		s.setZoom(HomeZoom)
		m.view.SetZoomLabel(s.zoom.Label())
	}
	s.view.Navigate(url)
}

func (m *Manager) ZoomIn() Zoom    { return m.SetZoomPercent(m.Active().zoom.In()) }
func (m *Manager) ZoomOut() Zoom   { return m.SetZoomPercent(m.Active().zoom.Out()) }
func (m *Manager) ZoomReset() Zoom { return m.SetZoomPercent(DefaultZoom) }

// SetZoomPercent sets the active tab's zoom, clamped, and returns the level applied.
func (m *Manager) SetZoomPercent(z Zoom) Zoom {
	s := m.Active()
	s.setZoom(z)
	m.view.SetZoomLabel(s.zoom.Label())
	return s.zoom
}

// RefreshHome loads home into every tab currently showing a home page so it
// picks up new favorites or a new background. It returns how many tabs were
// reloaded.
func (m *Manager) RefreshHome(home string) int {
	n := 0
	for _, s := range m.sessions {
		if navigation.IsHomeURL(s.view.CurrentURL()) {
			s.view.Navigate(home)
			n++
		}
	}
	return n
}

// URLChanged handles the engine reporting a new URL for a tab.
func (m *Manager) URLChanged(id, url string) error {
	i := m.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNoSuchTab, id)
	}
	if i == m.active {
		m.view.SetURLBar(urlBarText(url))
		m.view.SetFavorite(m.isFavorite(url))
	}
	return nil
}

// LoadFinished relabels the tab and records the visit.
func (m *Manager) LoadFinished(id string) error {
	i := m.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNoSuchTab, id)
	}
	s := m.sessions[i]
	title := s.view.CurrentTitle()
	s.label = TabLabel(title)
	m.view.SetTabLabel(i, s.label)

	if m.store == nil {
		return nil
	}
	if _, err := m.store.RecordVisit(s.view.CurrentURL(), title); err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}
	return nil
}

// TitleChanged updates the tab label as soon as the engine knows the title.
func (m *Manager) TitleChanged(id, title string) error {
	i := m.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNoSuchTab, id)
	}
	m.sessions[i].label = TabLabel(title)
	m.view.SetTabLabel(i, m.sessions[i].label)
	return nil
}

// IconChanged only validates the tab; the icon itself is read from the engine
// when a favorite is added.
func (m *Manager) IconChanged(id, iconURL string) error {
	if m.IndexOf(id) < 0 {
		return fmt.Errorf("%w: %s", ErrNoSuchTab, id)
	}
	logger.Debug.Printf("tab %s icon %s", id, iconURL)
	return nil
}

// ZoomChanged records a zoom change the engine made on its own, such as a
// pinch or ctrl+wheel, and returns the level now held for the tab.
func (m *Manager) ZoomChanged(id string, factor float64) (Zoom, error) {
	i := m.IndexOf(id)
	if i < 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoSuchTab, id)
	}
	s := m.sessions[i]
	s.zoom = ZoomFromFactor(factor)
	if s.zoom.Factor() != factor {
		s.view.SetZoom(s.zoom.Factor())
	}
	if i == m.active {
		m.view.SetZoomLabel(s.zoom.Label())
	}
	return s.zoom, nil
}

// RefreshIndicators re-sends the active tab's URL, zoom and favorite state.
func (m *Manager) RefreshIndicators() {
	m.refreshIndicators()
}

func (m *Manager) loadHome(s *Session) {
	s.setZoom(HomeZoom)
	s.view.Navigate(m.homeURL())
}

func (m *Manager) refreshIndicators() {
	s := m.Active()
	url := s.view.CurrentURL()
	m.view.SetURLBar(urlBarText(url))
	m.view.SetZoomLabel(s.zoom.Label())
	m.view.SetFavorite(m.isFavorite(url))
}

func (m *Manager) publishTabs() {
	labels := make([]string, len(m.sessions))
	for i, s := range m.sessions {
		labels[i] = s.label
	}
	m.view.SetTabs(labels, m.active)
}

func (m *Manager) isFavorite(url string) bool {
	if m.store == nil || url == "" || navigation.IsInternalURL(url) {
		return false
	}
	ok, err := m.store.IsFavorite(url)
	if err != nil {
		logger.Debug.Printf("favorite lookup for %s: %v", url, err)
		return false
	}
	return ok
}

func urlBarText(url string) string {
	if navigation.IsHomeURL(url) {
		return ""
	}
	return url
}
