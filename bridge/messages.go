// Package bridge attaches a host process that owns the real window and web
// views to the shell over a WebSocket. The host forwards input and engine
// events; the shell answers with commands. Every host gets its own event
// loop goroutine, which is the only goroutine touching that host's shell.
package bridge

import (
	"encoding/json"

	"neonshell/geometry"
)

// Envelope is one WebSocket message in either direction.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Host to shell.
const (
	MsgHello        = "hello"
	MsgWindow       = "window"
	MsgPointer      = "pointer"
	MsgURLChanged   = "urlChanged"
	MsgLoadFinished = "loadFinished"
	MsgTitleChanged = "titleChanged"
	MsgIconChanged  = "iconUrlChanged"
	MsgZoomChanged  = "zoomChanged"
	MsgDialog       = "dialog"
	MsgAction       = "action"
)

// Shell to host.
const (
	MsgCreateView        = "createView"
	MsgCloseView         = "closeView"
	MsgNavigate          = "navigate"
	MsgBack              = "back"
	MsgForward           = "forward"
	MsgReload            = "reload"
	MsgSetZoom           = "setZoom"
	MsgSetGeometry       = "setGeometry"
	MsgStartSystemMove   = "startSystemMove"
	MsgStartSystemResize = "startSystemResize"
	MsgToggleMaximize    = "toggleMaximize"
	MsgMinimize          = "minimize"
	MsgClose             = "close"
	MsgCursor            = "cursor"
	MsgURLBar            = "urlBar"
	MsgZoomLabel         = "zoomLabel"
	MsgFavorite          = "favorite"
	MsgTabLabel          = "tabLabel"
	MsgTabs              = "tabs"
	MsgNotify            = "notify"
	MsgConfirm           = "confirm"
	MsgResult            = "result"
	MsgHistory           = "history"
	MsgFavorites         = "favorites"
	MsgSettings          = "settings"
)

type HelloData struct {
	Geometry     geometry.Rect `json:"geometry"`
	MinimumSize  geometry.Size `json:"minimumSize"`
	Maximized    bool          `json:"maximized"`
	NativeMove   bool          `json:"nativeMove"`
	NativeResize bool          `json:"nativeResize"`
}

// WindowData updates the main window, or the dialog named by Dialog.
type WindowData struct {
	Geometry  geometry.Rect `json:"geometry"`
	Maximized bool          `json:"maximized"`
	Dialog    string        `json:"dialog,omitempty"`
}

// DialogData announces a frameless dialog opening or closing. Pointer events
// carrying its ID drive its own geometry controller.
type DialogData struct {
	ID           string        `json:"id"`
	Open         bool          `json:"open"`
	Geometry     geometry.Rect `json:"geometry"`
	MinimumSize  geometry.Size `json:"minimumSize"`
	NativeMove   bool          `json:"nativeMove"`
	NativeResize bool          `json:"nativeResize"`
}

type PointerData struct {
	// Kind is down, move, up or double.
	Kind     string         `json:"kind"`
	Local    geometry.Point `json:"local"`
	Global   geometry.Point `json:"global"`
	TitleBar bool           `json:"titleBar"`
	// Child marks events from a child widget placed at Origin.
	Child  bool           `json:"child,omitempty"`
	Origin geometry.Point `json:"origin,omitempty"`
	// Dialog targets an open dialog instead of the main window.
	Dialog string `json:"dialog,omitempty"`
}

// TabData carries engine events for one tab and the commands addressed to it.
type TabData struct {
	Tab     string  `json:"tab"`
	URL     string  `json:"url,omitempty"`
	Title   string  `json:"title,omitempty"`
	IconURL string  `json:"iconUrl,omitempty"`
	Zoom    float64 `json:"zoom,omitempty"`
}

type ActionData struct {
	Name      string          `json:"name"`
	Args      json.RawMessage `json:"args,omitempty"`
	Confirmed bool            `json:"confirmed,omitempty"`
}

// Window commands name the dialog they are for; an empty Dialog is the main
// window.

type GeometryData struct {
	Geometry geometry.Rect `json:"geometry"`
	Dialog   string        `json:"dialog,omitempty"`
}

type EdgeData struct {
	Edge   string `json:"edge"`
	Dialog string `json:"dialog,omitempty"`
}

type CursorData struct {
	Cursor string `json:"cursor"`
	Dialog string `json:"dialog,omitempty"`
}

type DialogRef struct {
	Dialog string `json:"dialog"`
}

type TextData struct {
	Text string `json:"text"`
}

type FavoriteData struct {
	Starred bool `json:"starred"`
}

type TabLabelData struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

type TabsData struct {
	Labels []string `json:"labels"`
	Active int      `json:"active"`
}

type NotifyData struct {
	Level   string `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ConfirmData asks the host to confirm Action and send it again with
// Confirmed set.
type ConfirmData struct {
	Title    string     `json:"title"`
	Question string     `json:"question"`
	Action   ActionData `json:"action"`
}

type ResultData struct {
	Action string `json:"action"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}
