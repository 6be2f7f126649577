// Package shell is the browser application: it owns the store, the tab strip,
// the window geometry controller and the user's settings, and turns chrome
// actions into calls on them.
package shell

import (
	"errors"
	"fmt"
	"path/filepath"

	"neonshell/data"
	"neonshell/geometry"
	"neonshell/homepage"
	"neonshell/logger"
	"neonshell/navigation"
	"neonshell/services"
	"neonshell/tabs"
)

// ErrCancelled is returned when the user declines a confirmation.
var ErrCancelled = errors.New("cancelled")

// ErrInternalPage is returned for actions that make no sense on the home
// page or a blank page.
var ErrInternalPage = errors.New("internal page")

type Notifier interface {
	Info(title, message string)
	Warn(title, message string)
}

type Confirmer interface {
	Confirm(title, question string) bool
}

// Chrome shows the display settings on the window chrome: font size, icon
// size and layout scale.
type Chrome interface {
	ShowSettings(settings Settings)
}

// Window is the top level window: geometry plus the title bar buttons.
type Window interface {
	geometry.Window
	Minimize()
	Close()
}

type Config struct {
	Store     data.BrowserRepository
	Window    Window
	NewView   tabs.EngineFactory
	View      tabs.View
	Notifier  Notifier
	Confirmer Confirmer
	Chrome    Chrome
	// Engine is the initial search engine; the zero value means Google.
	Engine navigation.SearchEngine
	Logo   *homepage.Image
	// Background was loaded from BackgroundPath at startup.
	Background     *homepage.Image
	BackgroundPath string
	// Clipboard defaults to the system clipboard.
	Clipboard func(text string) error
}

type Shell struct {
	store      data.BrowserRepository
	window     Window
	geometry   *geometry.Controller
	tabs       *tabs.Manager
	notifier   Notifier
	confirmer  Confirmer
	chrome     Chrome
	engine     navigation.SearchEngine
	settings   Settings
	background *homepage.Image
	logo       *homepage.Image
	homeURL    string
	copyText   func(string) error
}

// New builds the shell and opens the first tab on the home page.
func New(cfg Config) (*Shell, error) {
	s := &Shell{
		store:      cfg.Store,
		window:     cfg.Window,
		notifier:   cfg.Notifier,
		confirmer:  cfg.Confirmer,
		chrome:     cfg.Chrome,
		engine:     cfg.Engine,
		settings:   DefaultSettings(),
		logo:       cfg.Logo,
		background: cfg.Background,
		copyText:   cfg.Clipboard,
	}
	if s.background != nil {
		s.settings.BackgroundImagePath = cfg.BackgroundPath
	}
	if s.engine.Name == "" {
		s.engine = navigation.DefaultEngine
	}
	if s.copyText == nil {
		s.copyText = services.CopyText
	}
	if s.window != nil {
		s.geometry = geometry.NewController(s.window, geometry.MainWindowOptions())
	}
	if err := s.rebuildHome(); err != nil {
		return nil, err
	}
	s.tabs = tabs.NewManager(tabs.Config{
		NewView: cfg.NewView,
		HomeURL: s.HomeURL,
		Store:   cfg.Store,
		View:    cfg.View,
	})
	s.showSettings()
	return s, nil
}

func (s *Shell) Tabs() *tabs.Manager                   { return s.tabs }
func (s *Shell) Geometry() *geometry.Controller        { return s.geometry }
func (s *Shell) Store() data.BrowserRepository         { return s.store }
func (s *Shell) SearchEngine() navigation.SearchEngine { return s.engine }
func (s *Shell) Settings() Settings                    { return s.settings }
func (s *Shell) HomeURL() string                       { return s.homeURL }

// DialogGeometry returns a controller for a frameless dialog of this shell.
func (s *Shell) DialogGeometry(w geometry.Window) *geometry.Controller {
	return geometry.NewController(w, geometry.DialogOptions())
}

// NavigateTo loads address bar input in the active tab. It reports whether
// anything was loaded.
func (s *Shell) NavigateTo(text string) bool {
	target, isSearch, ok := navigation.Resolve(text, s.engine)
	if !ok {
		return false
	}
	logger.Debug.Printf("navigate %q -> %s (search=%v)", text, target, isSearch)
	s.tabs.Navigate(target)
	return true
}

func (s *Shell) SetSearchEngine(name string) error {
	engine, err := navigation.EngineByName(name)
	if err != nil {
		return fmt.Errorf("%w: %q", err, name)
	}
	s.engine = engine
	return s.rebuildHome()
}

// ToggleFavorite stars or unstars the active tab's page.
func (s *Shell) ToggleFavorite() error {
	active := s.tabs.Active()
	url := active.URL()
	if navigation.IsInternalURL(url) {
		s.warn("Cannot Add", "Cannot add the home page or a blank page to favorites.")
		return ErrInternalPage
	}

	starred, err := s.store.IsFavorite(url)
	if err != nil {
		return fmt.Errorf("checking favorite: %w", err)
	}
	if starred {
		if _, err := s.store.RemoveFavorite(url); err != nil {
			return fmt.Errorf("removing favorite: %w", err)
		}
		s.info("Favorites", "Removed from favorites!")
	} else {
		_, err := s.store.AddFavorite(data.FavoriteEntry{
			Url:     url,
			Title:   active.Title(),
			Favicon: active.IconURL(),
		})
		switch {
		case errors.Is(err, data.ErrAlreadyFavorite):
			s.info("Favorites", "Already in favorites!")
		case err != nil:
			return fmt.Errorf("adding favorite: %w", err)
		default:
			s.info("Favorites", "Added to favorites!")
		}
	}

	if err := s.RefreshHomePage(); err != nil {
		return err
	}
	s.tabs.RefreshIndicators()
	return nil
}

// RefreshHomePage regenerates the home page and reloads every tab showing it.
func (s *Shell) RefreshHomePage() error {
	if err := s.rebuildHome(); err != nil {
		return err
	}
	n := s.tabs.RefreshHome(s.homeURL)
	logger.Debug.Printf("home page refreshed in %d tabs", n)
	return nil
}

func (s *Shell) rebuildHome() error {
	var favorites []data.FavoriteEntry
	if s.store != nil {
		var err error
		favorites, err = s.store.ListFavorites()
		if err != nil {
			return fmt.Errorf("listing favorites for home page: %w", err)
		}
	}
	url, err := homepage.Build(homepage.Page{
		Favorites:  favorites,
		Background: s.background,
		Logo:       s.logo,
		Engines:    navigation.Engines(),
		Selected:   s.engine.Name,
	})
	if err != nil {
		return err
	}
	s.homeURL = url
	return nil
}

func (s *Shell) History(limit int) ([]data.HistoryEntry, error) {
	return s.store.ListHistory(limit)
}

func (s *Shell) Favorites() ([]data.FavoriteEntry, error) {
	return s.store.ListFavorites()
}

// DeleteHistoryEntry removes one history row after the user confirms.
func (s *Shell) DeleteHistoryEntry(id int64) error {
	if !s.confirm("Delete History Entry", "Delete this history entry?") {
		return ErrCancelled
	}
	if _, err := s.store.DeleteHistoryEntry(id); err != nil {
		return fmt.Errorf("deleting history entry %d: %w", id, err)
	}
	return nil
}

// ClearHistory removes the rows scope covers after the user confirms and
// returns how many were removed.
func (s *Shell) ClearHistory(scope data.ClearScope) (int64, error) {
	if !s.confirm("Clear History", fmt.Sprintf("Are you sure you want to clear %s?", scope.Description())) {
		return 0, ErrCancelled
	}
	n, err := s.store.ClearHistory(scope)
	if err != nil {
		return 0, fmt.Errorf("clearing history: %w", err)
	}
	s.info("History Cleared", fmt.Sprintf("Removed %d entries.", n))
	return n, nil
}

// DeleteFavorite unstars url after the user confirms.
func (s *Shell) DeleteFavorite(url string) error {
	if !s.confirm("Remove Favorite", fmt.Sprintf("Remove %s from favorites?", url)) {
		return ErrCancelled
	}
	if _, err := s.store.RemoveFavorite(url); err != nil {
		return fmt.Errorf("removing favorite: %w", err)
	}
	if err := s.RefreshHomePage(); err != nil {
		return err
	}
	s.tabs.RefreshIndicators()
	return nil
}

// ApplySettings validates and applies new settings. The layout scale becomes
// the active tab's zoom; the rest goes to the chrome.
func (s *Shell) ApplySettings(next Settings) error {
	if err := next.Validate(); err != nil {
		s.warn("Invalid Settings", err.Error())
		return err
	}

	if next.BackgroundImagePath != s.settings.BackgroundImagePath {
		if next.BackgroundImagePath == "" {
			if err := s.clearBackground(); err != nil {
				return err
			}
		} else if err := s.loadBackground(next.BackgroundImagePath); err != nil {
			return err
		}
	}

	next.BackgroundImagePath = s.settings.BackgroundImagePath
	s.settings = next
	s.tabs.SetZoomPercent(tabs.Zoom(next.LayoutScalePercent))
	s.showSettings()
	return nil
}

// SetBackgroundImage loads path as the home page background. On failure the
// user is warned and the previous background stays.
func (s *Shell) SetBackgroundImage(path string) error {
	if err := s.loadBackground(path); err != nil {
		return err
	}
	s.showSettings()
	return nil
}

func (s *Shell) ClearBackgroundImage() error {
	if err := s.clearBackground(); err != nil {
		return err
	}
	s.showSettings()
	return nil
}

func (s *Shell) loadBackground(path string) error {
	img, err := homepage.LoadImage(path)
	if err != nil {
		s.warn("Invalid Image", fmt.Sprintf("Could not use %s as background: %v", filepath.Base(path), err))
		return err
	}
	s.background = img
	s.settings.BackgroundImagePath = path
	return s.RefreshHomePage()
}

func (s *Shell) clearBackground() error {
	s.background = nil
	s.settings.BackgroundImagePath = ""
	return s.RefreshHomePage()
}

func (s *Shell) showSettings() {
	if s.chrome != nil {
		s.chrome.ShowSettings(s.settings)
	}
}

// CopyCurrentURL puts the active tab's URL on the clipboard.
func (s *Shell) CopyCurrentURL() error {
	url := s.tabs.Active().URL()
	if navigation.IsInternalURL(url) {
		s.warn("Copy URL", "The home page has no address to copy.")
		return ErrInternalPage
	}
	if err := s.copyText(url); err != nil {
		s.warn("Copy URL", err.Error())
		return err
	}
	s.info("Copy URL", "Copied to clipboard.")
	return nil
}

func (s *Shell) Minimize() {
	if s.window != nil {
		s.window.Minimize()
	}
}

func (s *Shell) ToggleMaximize() {
	if s.window != nil {
		s.window.ToggleMaximize()
	}
}

func (s *Shell) CloseWindow() {
	if s.window != nil {
		s.window.Close()
	}
}

func (s *Shell) confirm(title, question string) bool {
	if s.confirmer == nil {
		return false
	}
	return s.confirmer.Confirm(title, question)
}

func (s *Shell) info(title, message string) {
	if s.notifier != nil {
		s.notifier.Info(title, message)
	}
}

func (s *Shell) warn(title, message string) {
	logger.Debug.Printf("%s: %s", title, message)
	if s.notifier != nil {
		s.notifier.Warn(title, message)
	}
}
