package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	rect      Rect
	min       Size
	maximized bool
	cursor    Cursor
	toggles   int
}

func (w *fakeWindow) Geometry() Rect     { return w.rect }
func (w *fakeWindow) MinimumSize() Size  { return w.min }
func (w *fakeWindow) IsMaximized() bool  { return w.maximized }
func (w *fakeWindow) SetGeometry(r Rect) { w.rect = r }
func (w *fakeWindow) SetCursor(c Cursor) { w.cursor = c }

func (w *fakeWindow) ToggleMaximize() {
	w.maximized = !w.maximized
	w.toggles++
}

type nativeWindow struct {
	fakeWindow
	moves   int
	resizes []Edge
}

func (w *nativeWindow) StartSystemMove() bool {
	w.moves++
	return true
}

func (w *nativeWindow) StartSystemResize(edge Edge) bool {
	w.resizes = append(w.resizes, edge)
	return true
}

func newWindow() *fakeWindow {
	return &fakeWindow{rect: Rect{X: 100, Y: 100, W: 800, H: 600}, min: Size{W: 400, H: 300}}
}

// press at a window-local point and return the matching global point
func at(w Window, local Point) PointerEvent {
	return PointerEvent{Local: local, Global: local.Add(w.Geometry().Origin())}
}

func TestClassifyEdge(t *testing.T) {
	size := Size{W: 800, H: 600}

	cases := []struct {
		point Point
		want  Edge
	}{
		{Point{400, 300}, EdgeNone},
		{Point{5, 300}, EdgeLeft},
		{Point{10, 300}, EdgeLeft},
		{Point{11, 300}, EdgeNone},
		{Point{795, 300}, EdgeRight},
		{Point{400, 2}, EdgeTop},
		{Point{400, 598}, EdgeBottom},
		{Point{3, 3}, EdgeTopLeft},
		{Point{797, 4}, EdgeTopRight},
		{Point{1, 599}, EdgeBottomLeft},
		{Point{799, 599}, EdgeBottomRight},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyEdge(tc.point, size, MainWindowMargin), "point %v", tc.point)
	}

	assert.Equal(t, EdgeNone, ClassifyEdge(Point{9, 300}, size, DialogMargin))
}

func TestEdgeString(t *testing.T) {
	assert.Equal(t, "top_left", EdgeTopLeft.String())
	assert.Equal(t, "bottom_right", EdgeBottomRight.String())
	assert.Equal(t, "none", EdgeNone.String())
}

func TestResizeRect(t *testing.T) {
	start := Rect{X: 100, Y: 100, W: 800, H: 600}
	min := Size{W: 400, H: 300}

	assert.Equal(t, Rect{X: 100, Y: 100, W: 850, H: 630}, ResizeRect(start, EdgeBottomRight, Point{50, 30}, min))
	assert.Equal(t, Rect{X: 120, Y: 110, W: 780, H: 590}, ResizeRect(start, EdgeTopLeft, Point{20, 10}, min))

	// shrinking past the minimum from the right keeps the origin
	assert.Equal(t, Rect{X: 100, Y: 100, W: 400, H: 600}, ResizeRect(start, EdgeRight, Point{-600, 0}, min))
	// from the left the right border stays fixed
	assert.Equal(t, Rect{X: 500, Y: 100, W: 400, H: 600}, ResizeRect(start, EdgeLeft, Point{700, 0}, min))
	assert.Equal(t, Rect{X: 100, Y: 100, W: 800, H: 300}, ResizeRect(start, EdgeBottom, Point{0, -1000}, min))
}

func TestControllerResizeBottomRight(t *testing.T) {
	w := newWindow()
	c := NewController(w, MainWindowOptions())

	press := at(w, Point{798, 598})
	require.True(t, c.PointerDown(press))
	assert.Equal(t, Resizing, c.State())
	assert.Equal(t, EdgeBottomRight, c.Edge())

	move := press
	move.Global = press.Global.Add(Point{50, 30})
	require.True(t, c.PointerMove(move))
	assert.Equal(t, Rect{X: 100, Y: 100, W: 850, H: 630}, w.rect)

	assert.True(t, c.PointerUp(move))
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, CursorArrow, w.cursor)
}

func TestControllerResizeTopLeft(t *testing.T) {
	w := newWindow()
	c := NewController(w, MainWindowOptions())

	press := at(w, Point{2, 2})
	require.True(t, c.PointerDown(press))

	// deltas are measured from the press, not from the previous move
	for _, d := range []Point{{5, 5}, {20, 10}} {
		move := press
		move.Global = press.Global.Add(d)
		c.PointerMove(move)
	}
	assert.Equal(t, Rect{X: 120, Y: 110, W: 780, H: 590}, w.rect)
}

func TestControllerResizeClampsToMinimum(t *testing.T) {
	w := newWindow()
	c := NewController(w, MainWindowOptions())

	press := at(w, Point{799, 300})
	require.True(t, c.PointerDown(press))
	move := press
	move.Global = press.Global.Add(Point{-700, 0})
	c.PointerMove(move)

	assert.Equal(t, Rect{X: 100, Y: 100, W: 400, H: 600}, w.rect)
}

func TestControllerDrag(t *testing.T) {
	w := newWindow()
	c := NewController(w, MainWindowOptions())

	press := at(w, Point{300, 20})
	press.OnTitleBar = true
	require.True(t, c.PointerDown(press))
	assert.Equal(t, Dragging, c.State())

	move := press
	move.Global = Point{500, 450}
	c.PointerMove(move)
	assert.Equal(t, Rect{X: 200, Y: 430, W: 800, H: 600}, w.rect)

	c.PointerUp(move)
	assert.Equal(t, Idle, c.State())
}

func TestControllerDragSuppressedWhileMaximized(t *testing.T) {
	w := newWindow()
	w.maximized = true
	c := NewController(w, MainWindowOptions())

	press := at(w, Point{300, 20})
	press.OnTitleBar = true
	c.PointerDown(press)
	move := press
	move.Global = Point{900, 900}
	c.PointerMove(move)

	assert.Equal(t, Rect{X: 100, Y: 100, W: 800, H: 600}, w.rect)
}

func TestControllerIgnoresEdgesWhileMaximized(t *testing.T) {
	w := newWindow()
	w.maximized = true
	c := NewController(w, MainWindowOptions())

	assert.False(t, c.PointerDown(at(w, Point{799, 300})))
	assert.Equal(t, Idle, c.State())
}

func TestControllerContentPressIsNotConsumed(t *testing.T) {
	w := newWindow()
	c := NewController(w, MainWindowOptions())

	assert.False(t, c.PointerDown(at(w, Point{400, 300})))
	assert.Equal(t, Idle, c.State())
}

func TestControllerPrefersSystemMoveAndResize(t *testing.T) {
	w := &nativeWindow{fakeWindow: *newWindow()}
	c := NewController(w, MainWindowOptions())

	require.True(t, c.PointerDown(at(w, Point{1, 300})))
	assert.Equal(t, []Edge{EdgeLeft}, w.resizes)
	assert.Equal(t, Idle, c.State())

	press := at(w, Point{300, 20})
	press.OnTitleBar = true
	require.True(t, c.PointerDown(press))
	assert.Equal(t, 1, w.moves)
	assert.Equal(t, Idle, c.State())
}

func TestControllerDoubleClick(t *testing.T) {
	w := newWindow()
	c := NewController(w, MainWindowOptions())

	ev := at(w, Point{300, 20})
	ev.OnTitleBar = true
	assert.True(t, c.DoubleClick(ev))
	assert.True(t, w.maximized)
	assert.True(t, c.DoubleClick(ev))
	assert.False(t, w.maximized)

	edge := at(w, Point{300, 2})
	edge.OnTitleBar = true
	assert.False(t, c.DoubleClick(edge))
	assert.Equal(t, 2, w.toggles)

	dialog := NewController(newWindow(), DialogOptions())
	assert.False(t, dialog.DoubleClick(ev))
}

func TestControllerHoverCursor(t *testing.T) {
	w := newWindow()
	c := NewController(w, MainWindowOptions())

	c.PointerMove(at(w, Point{0, 0}))
	assert.Equal(t, CursorSizeDiagonalForward, w.cursor)
	c.PointerMove(at(w, Point{799, 300}))
	assert.Equal(t, CursorSizeHorizontal, w.cursor)
	c.PointerMove(at(w, Point{400, 300}))
	assert.Equal(t, CursorArrow, w.cursor)
}

func TestPointerUpAlwaysResets(t *testing.T) {
	w := newWindow()
	c := NewController(w, MainWindowOptions())

	assert.False(t, c.PointerUp(at(w, Point{400, 300})))
	assert.Equal(t, Idle, c.State())

	c.PointerDown(at(w, Point{0, 300}))
	assert.True(t, c.PointerUp(at(w, Point{400, 300})))
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, EdgeNone, c.Edge())
}

func TestChildForwarder(t *testing.T) {
	w := newWindow()
	c := NewController(w, MainWindowOptions())
	// a web view filling the window below an 80px tall chrome area
	view := ChildForwarder{Controller: c, Origin: Point{0, 80}}

	inside := PointerEvent{Local: Point{400, 200}, Global: Point{500, 380}}
	assert.False(t, view.PointerDown(inside))
	assert.Equal(t, Idle, c.State())

	// bottom-right corner of the view is the window's corner
	corner := PointerEvent{Local: Point{798, 518}, Global: Point{898, 698}}
	require.True(t, view.PointerDown(corner))
	assert.Equal(t, EdgeBottomRight, c.Edge())

	// once resizing, moves are forwarded even away from the border
	move := PointerEvent{Local: Point{400, 200}, Global: Point{948, 728}}
	assert.True(t, view.PointerMove(move))
	assert.Equal(t, Rect{X: 100, Y: 100, W: 850, H: 630}, w.rect)

	assert.True(t, view.PointerUp(move))
	assert.Equal(t, Idle, c.State())
}

func TestChildForwarderRestoresArrowInsideChild(t *testing.T) {
	w := newWindow()
	c := NewController(w, MainWindowOptions())
	view := ChildForwarder{Controller: c, Origin: Point{0, 80}}

	edge := PointerEvent{Local: Point{798, 200}, Global: Point{898, 380}}
	view.PointerMove(edge)
	assert.Equal(t, CursorSizeHorizontal, w.cursor)
	assert.Equal(t, CursorSizeHorizontal, c.Cursor())

	interior := PointerEvent{Local: Point{400, 200}, Global: Point{500, 380}}
	assert.False(t, view.PointerMove(interior))
	assert.Equal(t, CursorArrow, w.cursor)
	assert.Equal(t, CursorArrow, c.Cursor())
}
