package tabs

import (
	"github.com/google/uuid"
)

// DefaultLabel is shown until a tab's first page finishes loading.
const DefaultLabel = "New Tab"

// MaxLabelLength is the longest tab label before it is cut with "...".
const MaxLabelLength = 20

type Session struct {
	id    string
	view  Engine
	zoom  Zoom
	label string
}

func newSession(factory EngineFactory) *Session {
	id := uuid.NewString()
	return &Session{
		id:    id,
		view:  factory(id),
		zoom:  DefaultZoom,
		label: DefaultLabel,
	}
}

func (s *Session) ID() string      { return s.id }
func (s *Session) View() Engine    { return s.view }
func (s *Session) Zoom() Zoom      { return s.zoom }
func (s *Session) Label() string   { return s.label }
func (s *Session) URL() string     { return s.view.CurrentURL() }
func (s *Session) Title() string   { return s.view.CurrentTitle() }
func (s *Session) IconURL() string { return s.view.CurrentIconURL() }

func (s *Session) setZoom(z Zoom) {
	s.zoom = z.Clamp()
	s.view.SetZoom(s.zoom.Factor())
}

// TabLabel shortens a page title for the tab strip.
func TabLabel(title string) string {
	if title == "" {
		return DefaultLabel
	}
	runes := []rune(title)
	if len(runes) > MaxLabelLength {
		return string(runes[:MaxLabelLength]) + "..."
	}
	return title
}
