// Package tabs owns the browser's tab strip: one session per tab, each
// wrapping a web view supplied by the embedding engine.
package tabs

// Engine is the embedded web view behind one tab. Its events are delivered
// to the Manager by the code that owns the engine (URLChanged, LoadFinished,
// TitleChanged, IconChanged).
type Engine interface {
	Navigate(url string)
	GoBack()
	GoForward()
	Reload()
	SetZoom(factor float64)
	CurrentURL() string
	CurrentTitle() string
	CurrentIconURL() string
}

// EngineFactory creates the web view for a new tab with the given id.
type EngineFactory func(id string) Engine

// View is the browser chrome the Manager keeps in sync with the active tab.
type View interface {
	SetURLBar(text string)
	SetZoomLabel(label string)
	SetFavorite(starred bool)
	SetTabLabel(index int, label string)
	SetTabs(labels []string, active int)
}

// Store is the part of the history/favorites store the tab strip needs.
type Store interface {
	RecordVisit(url string, title string) (bool, error)
	IsFavorite(url string) (bool, error)
}
