package bridge

import (
	"neonshell/geometry"
	"neonshell/tabs"
)

// remoteView is a tab's web view living in the host. URL, title and icon are
// the last values the host reported.
type remoteView struct {
	host  *Host
	id    string
	url   string
	title string
	icon  string
}

func (h *Host) newView(id string) tabs.Engine {
	v := &remoteView{host: h, id: id}
	h.views[id] = v
	h.send(MsgCreateView, TabData{Tab: id})
	return v
}

// Navigate records url right away so tab bookkeeping sees it before the
// host reports back.
func (v *remoteView) Navigate(url string) {
	v.url = url
	v.host.send(MsgNavigate, TabData{Tab: v.id, URL: url})
}

func (v *remoteView) GoBack()                { v.host.send(MsgBack, TabData{Tab: v.id}) }
func (v *remoteView) GoForward()             { v.host.send(MsgForward, TabData{Tab: v.id}) }
func (v *remoteView) Reload()                { v.host.send(MsgReload, TabData{Tab: v.id}) }
func (v *remoteView) SetZoom(factor float64) { v.host.send(MsgSetZoom, TabData{Tab: v.id, Zoom: factor}) }
func (v *remoteView) CurrentURL() string     { return v.url }
func (v *remoteView) CurrentTitle() string   { return v.title }
func (v *remoteView) CurrentIconURL() string { return v.icon }

func (v *remoteView) Close() error {
	delete(v.host.views, v.id)
	v.host.send(MsgCloseView, TabData{Tab: v.id})
	return nil
}

// remoteWindow is the host's top level window, or one of its dialogs, as
// last reported.
type remoteWindow struct {
	host         *Host
	dialog       string
	rect         geometry.Rect
	min          geometry.Size
	maximized    bool
	nativeMove   bool
	nativeResize bool
}

func (w *remoteWindow) Geometry() geometry.Rect    { return w.rect }
func (w *remoteWindow) MinimumSize() geometry.Size { return w.min }
func (w *remoteWindow) IsMaximized() bool          { return w.maximized }

// ref is the payload of commands without arguments.
func (w *remoteWindow) ref() any {
	if w.dialog == "" {
		return nil
	}
	return DialogRef{Dialog: w.dialog}
}

func (w *remoteWindow) SetGeometry(r geometry.Rect) {
	w.rect = r
	w.host.send(MsgSetGeometry, GeometryData{Geometry: r, Dialog: w.dialog})
}

func (w *remoteWindow) ToggleMaximize() {
	w.maximized = !w.maximized
	w.host.send(MsgToggleMaximize, w.ref())
}

func (w *remoteWindow) Minimize() { w.host.send(MsgMinimize, w.ref()) }
func (w *remoteWindow) Close()    { w.host.send(MsgClose, w.ref()) }

func (w *remoteWindow) StartSystemMove() bool {
	if !w.nativeMove {
		return false
	}
	w.host.send(MsgStartSystemMove, w.ref())
	return true
}

func (w *remoteWindow) StartSystemResize(edge geometry.Edge) bool {
	if !w.nativeResize {
		return false
	}
	w.host.send(MsgStartSystemResize, EdgeData{Edge: edge.String(), Dialog: w.dialog})
	return true
}

func (w *remoteWindow) SetCursor(c geometry.Cursor) {
	w.host.send(MsgCursor, CursorData{Cursor: c.String(), Dialog: w.dialog})
}
