package geometry

// Window is the borderless top-level window or dialog being controlled.
type Window interface {
	Geometry() Rect
	MinimumSize() Size
	IsMaximized() bool
	SetGeometry(r Rect)
	ToggleMaximize()
}

// SystemMover is implemented by windows whose platform can run an
// interactive move or resize itself. Each method reports whether the
// platform took over.
type SystemMover interface {
	StartSystemMove() bool
	StartSystemResize(edge Edge) bool
}

// CursorSetter is implemented by windows that show hover feedback.
type CursorSetter interface {
	SetCursor(c Cursor)
}

type State int

const (
	Idle State = iota
	Dragging
	Resizing
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	}
	return "idle"
}

// PointerEvent is a primary-button pointer event. Local is relative to the
// receiving widget; Global is in screen space.
type PointerEvent struct {
	Local      Point
	Global     Point
	OnTitleBar bool
}

// PointerHandler is attached to every interactive widget so pointer input
// reaches one shared state machine. Each method reports whether it consumed
// the event.
type PointerHandler interface {
	PointerDown(ev PointerEvent) bool
	PointerMove(ev PointerEvent) bool
	PointerUp(ev PointerEvent) bool
}

type Options struct {
	// Margin is the resize border width in pixels.
	Margin int
	// Maximizable windows toggle maximize on title bar double-click and
	// ignore edge presses while maximized.
	Maximizable bool
}

// MainWindowOptions configures the browser's top-level window.
func MainWindowOptions() Options {
	return Options{Margin: MainWindowMargin, Maximizable: true}
}

// DialogOptions configures modal dialogs.
func DialogOptions() Options {
	return Options{Margin: DialogMargin}
}

// Controller is the drag/resize state machine for one window. It is not
// safe for concurrent use; feed it from the UI thread only.
type Controller struct {
	window  Window
	options Options

	state        State
	edge         Edge
	anchor       Point
	anchorRect   Rect
	anchorOffset Point
	// cursor is the shape last sent to the window.
	cursor Cursor
}

func NewController(window Window, options Options) *Controller {
	if options.Margin <= 0 {
		options.Margin = DialogMargin
	}
	return &Controller{window: window, options: options}
}

func (c *Controller) State() State { return c.state }

// Edge is the border being resized, EdgeNone unless Resizing.
func (c *Controller) Edge() Edge { return c.edge }

func (c *Controller) Window() Window { return c.window }

func (c *Controller) Margin() int { return c.options.Margin }

// EdgeAt classifies a window-local point against the current window size.
func (c *Controller) EdgeAt(local Point) Edge {
	return ClassifyEdge(local, c.window.Geometry().Size(), c.options.Margin)
}

func (c *Controller) resizeAllowed() bool {
	return !(c.options.Maximizable && c.window.IsMaximized())
}

func (c *Controller) PointerDown(ev PointerEvent) bool {
	if edge := c.EdgeAt(ev.Local); edge != EdgeNone && c.resizeAllowed() {
		if mover, ok := c.window.(SystemMover); ok && mover.StartSystemResize(edge) {
			return true
		}
		c.state = Resizing
		c.edge = edge
		c.anchor = ev.Global
		c.anchorRect = c.window.Geometry()
		return true
	}

	if !ev.OnTitleBar {
		return false
	}

	if !c.window.IsMaximized() {
		if mover, ok := c.window.(SystemMover); ok && mover.StartSystemMove() {
			return true
		}
	}
	c.state = Dragging
	c.anchorOffset = ev.Global.Sub(c.window.Geometry().Origin())
	return true
}

func (c *Controller) PointerMove(ev PointerEvent) bool {
	switch c.state {
	case Resizing:
		delta := ev.Global.Sub(c.anchor)
		c.window.SetGeometry(ResizeRect(c.anchorRect, c.edge, delta, c.window.MinimumSize()))
		return true

	case Dragging:
		if c.window.IsMaximized() {
			return true
		}
		origin := ev.Global.Sub(c.anchorOffset)
		r := c.window.Geometry()
		r.X, r.Y = origin.X, origin.Y
		c.window.SetGeometry(r)
		return true
	}

	c.setCursor(ev.Local)
	return false
}

func (c *Controller) setCursor(local Point) {
	if !c.resizeAllowed() {
		c.showCursor(CursorArrow)
		return
	}
	c.showCursor(CursorFor(c.EdgeAt(local)))
}

func (c *Controller) showCursor(cursor Cursor) {
	setter, ok := c.window.(CursorSetter)
	if !ok {
		return
	}
	c.cursor = cursor
	setter.SetCursor(cursor)
}

// Cursor is the shape last shown on the window.
func (c *Controller) Cursor() Cursor { return c.cursor }

// PointerUp ends any drag or resize.
func (c *Controller) PointerUp(ev PointerEvent) bool {
	busy := c.state != Idle
	c.Reset()
	return busy
}

// Reset returns to Idle without touching the window geometry.
func (c *Controller) Reset() {
	c.state = Idle
	c.edge = EdgeNone
	c.anchor = Point{}
	c.anchorRect = Rect{}
	c.anchorOffset = Point{}
	c.showCursor(CursorArrow)
}

// DoubleClick toggles maximize for a title bar double-click away from the
// resize border.
func (c *Controller) DoubleClick(ev PointerEvent) bool {
	if !c.options.Maximizable || !ev.OnTitleBar {
		return false
	}
	if c.EdgeAt(ev.Local) != EdgeNone {
		return false
	}
	c.window.ToggleMaximize()
	return true
}

// ChildForwarder attaches a Controller to a child widget positioned at
// Origin inside the window. Events are mapped to window-local coordinates
// and only forwarded while they concern the window border, so ordinary
// clicks still reach the child.
type ChildForwarder struct {
	Controller *Controller
	Origin     Point
}

func (f ChildForwarder) translate(ev PointerEvent) PointerEvent {
	ev.Local = ev.Local.Add(f.Origin)
	ev.OnTitleBar = false
	return ev
}

func (f ChildForwarder) concernsWindow(ev PointerEvent) bool {
	if f.Controller.State() != Idle {
		return true
	}
	return f.Controller.EdgeAt(ev.Local) != EdgeNone && f.Controller.resizeAllowed()
}

func (f ChildForwarder) PointerDown(ev PointerEvent) bool {
	ev = f.translate(ev)
	if !f.concernsWindow(ev) {
		return false
	}
	return f.Controller.PointerDown(ev)
}

// PointerMove also restores the arrow once the pointer leaves the border
// for the child's interior.
func (f ChildForwarder) PointerMove(ev PointerEvent) bool {
	ev = f.translate(ev)
	if !f.concernsWindow(ev) {
		if f.Controller.cursor != CursorArrow {
			f.Controller.showCursor(CursorArrow)
		}
		return false
	}
	return f.Controller.PointerMove(ev)
}

func (f ChildForwarder) PointerUp(ev PointerEvent) bool {
	return f.Controller.PointerUp(f.translate(ev))
}
