package bridge

import (
	"encoding/json"
	"errors"
	"fmt"

	"neonshell/data"
)

var ErrUnknownAction = errors.New("unknown action")

func decodeArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding args: %w", err)
	}
	return nil
}

// runAction performs a chrome action on the shell.
func (h *Host) runAction(a ActionData) error {
	s := h.shell
	manager := s.Tabs()

	switch a.Name {
	case "navigate":
		var args struct {
			Text string `json:"text"`
		}
		if err := decodeArgs(a.Args, &args); err != nil {
			return err
		}
		s.NavigateTo(args.Text)
	case "back":
		manager.Back()
	case "forward":
		manager.Forward()
	case "reload":
		manager.Reload()
	case "home":
		manager.Home()
	case "newTab":
		var args struct {
			URL string `json:"url"`
		}
		if err := decodeArgs(a.Args, &args); err != nil {
			return err
		}
		manager.OpenTab(args.URL)
	case "closeTab", "activateTab":
		var args struct {
			Index int `json:"index"`
		}
		if err := decodeArgs(a.Args, &args); err != nil {
			return err
		}
		if a.Name == "closeTab" {
			return manager.CloseTab(args.Index)
		}
		return manager.Activate(args.Index)
	case "zoomIn":
		manager.ZoomIn()
	case "zoomOut":
		manager.ZoomOut()
	case "zoomReset":
		manager.ZoomReset()
	case "toggleFavorite":
		return s.ToggleFavorite()
	case "searchEngine":
		var args struct {
			Name string `json:"name"`
		}
		if err := decodeArgs(a.Args, &args); err != nil {
			return err
		}
		return s.SetSearchEngine(args.Name)
	case "copyUrl":
		return s.CopyCurrentURL()
	case "minimize":
		s.Minimize()
	case "maximize":
		s.ToggleMaximize()
	case "close":
		s.CloseWindow()
	case "history":
		var args struct {
			Limit int `json:"limit"`
		}
		if err := decodeArgs(a.Args, &args); err != nil {
			return err
		}
		entries, err := s.History(args.Limit)
		if err != nil {
			return err
		}
		h.send(MsgHistory, entries)
	case "favorites":
		favorites, err := s.Favorites()
		if err != nil {
			return err
		}
		h.send(MsgFavorites, favorites)
	case "deleteHistory":
		var args struct {
			ID int64 `json:"id"`
		}
		if err := decodeArgs(a.Args, &args); err != nil {
			return err
		}
		return s.DeleteHistoryEntry(args.ID)
	case "clearHistory":
		var args struct {
			Scope string `json:"scope"`
		}
		if err := decodeArgs(a.Args, &args); err != nil {
			return err
		}
		scope, err := data.ParseClearScope(args.Scope)
		if err != nil {
			return err
		}
		_, err = s.ClearHistory(scope)
		return err
	case "deleteFavorite":
		var args struct {
			URL string `json:"url"`
		}
		if err := decodeArgs(a.Args, &args); err != nil {
			return err
		}
		return s.DeleteFavorite(args.URL)
	case "settings":
		// fields left out keep their current value
		next := s.Settings()
		if err := decodeArgs(a.Args, &next); err != nil {
			return err
		}
		return s.ApplySettings(next)
	case "background":
		var args struct {
			Path string `json:"path"`
		}
		if err := decodeArgs(a.Args, &args); err != nil {
			return err
		}
		return s.SetBackgroundImage(args.Path)
	case "clearBackground":
		return s.ClearBackgroundImage()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Name)
	}
	return nil
}
