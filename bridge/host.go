package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"neonshell/data"
	"neonshell/geometry"
	"neonshell/homepage"
	"neonshell/logger"
	"neonshell/navigation"
	"neonshell/shell"
)

// Conn is the subset of *websocket.Conn the host uses.
type Conn interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	Close() error
}

type Options struct {
	Store          data.BrowserRepository
	Engine         navigation.SearchEngine
	Logo           *homepage.Image
	Background     *homepage.Image
	BackgroundPath string
	Clipboard      func(text string) error
}

// Host is one attached host window.
type Host struct {
	conn  Conn
	opts  Options
	tasks chan func()
	out   chan Envelope
	done  chan struct{}
	once  sync.Once

	// owned by the loop goroutine
	shell   *shell.Shell
	window  *remoteWindow
	views   map[string]*remoteView
	dialogs map[string]*geometry.Controller
	current *ActionData
}

func NewHost(conn Conn, opts Options) *Host {
	return &Host{
		conn:    conn,
		opts:    opts,
		tasks:   make(chan func(), 64),
		out:     make(chan Envelope, 256),
		done:    make(chan struct{}),
		views:   make(map[string]*remoteView),
		dialogs: make(map[string]*geometry.Controller),
	}
}

// Serve runs the host's event loop until the connection closes or ctx is
// cancelled. A normal close returns nil.
func (h *Host) Serve(ctx context.Context) error {
	errc := make(chan error, 2)
	go h.readLoop(errc)
	go h.writeLoop(errc)
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errc:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		case task := <-h.tasks:
			task()
		}
	}
}

// Dispatch queues fn on the host's loop goroutine. It returns false once the
// host has shut down.
func (h *Host) Dispatch(fn func()) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.tasks <- fn:
		return true
	case <-h.done:
		return false
	}
}

// WithShell runs fn with the host's shell on the loop goroutine. Hosts that
// have not said hello yet are skipped.
func (h *Host) WithShell(fn func(s *shell.Shell)) bool {
	return h.Dispatch(func() {
		if h.shell != nil {
			fn(h.shell)
		}
	})
}

func (h *Host) Done() <-chan struct{} { return h.done }

func (h *Host) shutdown() {
	h.once.Do(func() {
		close(h.done)
		h.conn.Close()
	})
}

func (h *Host) readLoop(errc chan<- error) {
	for {
		var env Envelope
		if err := h.conn.ReadJSON(&env); err != nil {
			errc <- err
			return
		}
		if !h.Dispatch(func() { h.handle(env) }) {
			return
		}
	}
}

func (h *Host) writeLoop(errc chan<- error) {
	for {
		select {
		case env := <-h.out:
			if err := h.conn.WriteJSON(env); err != nil {
				errc <- err
				return
			}
		case <-h.done:
			return
		}
	}
}

func (h *Host) send(kind string, payload any) {
	env := Envelope{Type: kind}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			logger.Debug.Printf("encoding %s: %v", kind, err)
			return
		}
		env.Data = raw
	}
	select {
	case h.out <- env:
	case <-h.done:
	}
}

func (h *Host) handle(env Envelope) {
	if env.Type != MsgHello && h.shell == nil {
		logger.Debug.Printf("ignoring %s before hello", env.Type)
		return
	}

	var err error
	switch env.Type {
	case MsgHello:
		err = h.hello(env.Data)
	case MsgWindow:
		var d WindowData
		if err = json.Unmarshal(env.Data, &d); err == nil {
			err = h.windowUpdate(d)
		}
	case MsgDialog:
		var d DialogData
		if err = json.Unmarshal(env.Data, &d); err == nil {
			h.dialog(d)
		}
	case MsgPointer:
		var d PointerData
		if err = json.Unmarshal(env.Data, &d); err == nil {
			err = h.pointer(d)
		}
	case MsgURLChanged, MsgLoadFinished, MsgTitleChanged, MsgIconChanged, MsgZoomChanged:
		var d TabData
		if err = json.Unmarshal(env.Data, &d); err == nil {
			err = h.engineEvent(env.Type, d)
		}
	case MsgAction:
		var d ActionData
		if err = json.Unmarshal(env.Data, &d); err == nil {
			h.action(d)
		}
	default:
		err = fmt.Errorf("unknown message type %q", env.Type)
	}
	if err != nil {
		logger.Debug.Printf("handling %s: %v", env.Type, err)
	}
}

func (h *Host) hello(raw json.RawMessage) error {
	var d HelloData
	if err := json.Unmarshal(raw, &d); err != nil {
		return err
	}
	if h.window == nil {
		h.window = &remoteWindow{host: h}
	}
	h.window.rect = d.Geometry
	h.window.min = d.MinimumSize
	h.window.maximized = d.Maximized
	h.window.nativeMove = d.NativeMove
	h.window.nativeResize = d.NativeResize

	if h.shell != nil {
		h.shell.Tabs().RefreshIndicators()
		return nil
	}
	s, err := shell.New(shell.Config{
		Store:          h.opts.Store,
		Window:         h.window,
		NewView:        h.newView,
		View:           h,
		Notifier:       h,
		Confirmer:      h,
		Chrome:         h,
		Engine:         h.opts.Engine,
		Logo:           h.opts.Logo,
		Background:     h.opts.Background,
		BackgroundPath: h.opts.BackgroundPath,
		Clipboard:      h.opts.Clipboard,
	})
	if err != nil {
		h.Warn("Startup", err.Error())
		return err
	}
	h.shell = s
	return nil
}

func (h *Host) windowUpdate(d WindowData) error {
	w := h.window
	if d.Dialog != "" {
		ctrl, ok := h.dialogs[d.Dialog]
		if !ok {
			return fmt.Errorf("update for unknown dialog %s", d.Dialog)
		}
		w = ctrl.Window().(*remoteWindow)
	}
	w.rect = d.Geometry
	w.maximized = d.Maximized
	return nil
}

// dialog opens or forgets a dialog's geometry controller.
func (h *Host) dialog(d DialogData) {
	if !d.Open {
		delete(h.dialogs, d.ID)
		return
	}
	w := &remoteWindow{
		host:         h,
		dialog:       d.ID,
		rect:         d.Geometry,
		min:          d.MinimumSize,
		nativeMove:   d.NativeMove,
		nativeResize: d.NativeResize,
	}
	h.dialogs[d.ID] = h.shell.DialogGeometry(w)
}

func (h *Host) pointer(d PointerData) error {
	ctrl := h.shell.Geometry()
	if d.Dialog != "" {
		var ok bool
		if ctrl, ok = h.dialogs[d.Dialog]; !ok {
			return fmt.Errorf("pointer for unknown dialog %s", d.Dialog)
		}
	}
	ev := geometry.PointerEvent{Local: d.Local, Global: d.Global, OnTitleBar: d.TitleBar}

	var handler geometry.PointerHandler = ctrl
	if d.Child {
		handler = geometry.ChildForwarder{Controller: ctrl, Origin: d.Origin}
	}
	switch d.Kind {
	case "down":
		handler.PointerDown(ev)
	case "move":
		handler.PointerMove(ev)
	case "up":
		handler.PointerUp(ev)
	case "double":
		if !d.Child {
			ctrl.DoubleClick(ev)
		}
	default:
		return fmt.Errorf("unknown pointer kind %q", d.Kind)
	}
	return nil
}

func (h *Host) engineEvent(kind string, d TabData) error {
	view, ok := h.views[d.Tab]
	if !ok {
		return fmt.Errorf("event for unknown tab %s", d.Tab)
	}
	manager := h.shell.Tabs()
	switch kind {
	case MsgURLChanged:
		view.url = d.URL
		return manager.URLChanged(d.Tab, d.URL)
	case MsgLoadFinished:
		if d.URL != "" {
			view.url = d.URL
		}
		if d.Title != "" {
			view.title = d.Title
		}
		return manager.LoadFinished(d.Tab)
	case MsgTitleChanged:
		view.title = d.Title
		return manager.TitleChanged(d.Tab, d.Title)
	case MsgIconChanged:
		view.icon = d.IconURL
		return manager.IconChanged(d.Tab, d.IconURL)
	case MsgZoomChanged:
		_, err := manager.ZoomChanged(d.Tab, d.Zoom)
		return err
	}
	return nil
}

func (h *Host) action(d ActionData) {
	h.current = &d
	defer func() { h.current = nil }()

	result := ResultData{Action: d.Name, OK: true}
	if err := h.runAction(d); err != nil {
		result.OK = false
		result.Error = err.Error()
		if !errors.Is(err, shell.ErrCancelled) {
			logger.Debug.Printf("action %s: %v", d.Name, err)
		}
	}
	h.send(MsgResult, result)
}

// SetURLBar and the other View methods mirror chrome state to the host.
func (h *Host) SetURLBar(text string)       { h.send(MsgURLBar, TextData{Text: text}) }
func (h *Host) SetZoomLabel(label string)   { h.send(MsgZoomLabel, TextData{Text: label}) }
func (h *Host) SetFavorite(starred bool)    { h.send(MsgFavorite, FavoriteData{Starred: starred}) }
func (h *Host) SetTabLabel(i int, l string) { h.send(MsgTabLabel, TabLabelData{Index: i, Label: l}) }

func (h *Host) SetTabs(labels []string, active int) {
	h.send(MsgTabs, TabsData{Labels: labels, Active: active})
}

func (h *Host) ShowSettings(settings shell.Settings) { h.send(MsgSettings, settings) }

func (h *Host) Info(title, message string) {
	h.send(MsgNotify, NotifyData{Level: "info", Title: title, Message: message})
}

func (h *Host) Warn(title, message string) {
	h.send(MsgNotify, NotifyData{Level: "warn", Title: title, Message: message})
}

// Confirm approves the running action when the host already confirmed it.
// Otherwise it asks the host to confirm and resend, and declines for now.
func (h *Host) Confirm(title, question string) bool {
	if h.current == nil {
		return false
	}
	if h.current.Confirmed {
		return true
	}
	h.send(MsgConfirm, ConfirmData{Title: title, Question: question, Action: *h.current})
	return false
}
