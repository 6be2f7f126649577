// Package geometry gives borderless windows drag-to-move and
// edge-to-resize behaviour.
package geometry

import "strings"

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Rect is a window's screen position and size.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func (r Rect) Origin() Point { return Point{r.X, r.Y} }
func (r Rect) Size() Size    { return Size{r.W, r.H} }

// Edge is a set of window borders. Corners are two borders combined.
type Edge uint8

const (
	EdgeLeft Edge = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom

	EdgeNone        Edge = 0
	EdgeTopLeft          = EdgeTop | EdgeLeft
	EdgeTopRight         = EdgeTop | EdgeRight
	EdgeBottomLeft       = EdgeBottom | EdgeLeft
	EdgeBottomRight      = EdgeBottom | EdgeRight
)

func (e Edge) Has(border Edge) bool { return e&border != 0 }

func (e Edge) String() string {
	if e == EdgeNone {
		return "none"
	}
	var parts []string
	if e.Has(EdgeTop) {
		parts = append(parts, "top")
	}
	if e.Has(EdgeBottom) {
		parts = append(parts, "bottom")
	}
	if e.Has(EdgeLeft) {
		parts = append(parts, "left")
	}
	if e.Has(EdgeRight) {
		parts = append(parts, "right")
	}
	return strings.Join(parts, "_")
}

// Resize margins in pixels.
const (
	MainWindowMargin = 10
	DialogMargin     = 8
)

// ClassifyEdge reports which border a window-local point is on. Points
// within margin of two borders resolve to the corner.
func ClassifyEdge(local Point, size Size, margin int) Edge {
	var e Edge
	if local.X <= margin {
		e |= EdgeLeft
	} else if local.X >= size.W-margin {
		e |= EdgeRight
	}
	if local.Y <= margin {
		e |= EdgeTop
	} else if local.Y >= size.H-margin {
		e |= EdgeBottom
	}
	return e
}

// ResizeRect applies a pointer delta to the geometry captured at press time.
// Width and height never drop below minSize; dragging a left or top border moves
// the origin by the delta actually consumed so the opposite border stays put.
func ResizeRect(start Rect, edge Edge, delta Point, minSize Size) Rect {
	r := start

	if edge.Has(EdgeLeft) {
		width := max(minSize.W, start.W-delta.X)
		r.X = start.X + (start.W - width)
		r.W = width
	} else if edge.Has(EdgeRight) {
		r.W = max(minSize.W, start.W+delta.X)
	}

	if edge.Has(EdgeTop) {
		height := max(minSize.H, start.H-delta.Y)
		r.Y = start.Y + (start.H - height)
		r.H = height
	} else if edge.Has(EdgeBottom) {
		r.H = max(minSize.H, start.H+delta.Y)
	}

	return r
}

// Cursor is the pointer shape shown while hovering a border.
type Cursor int

const (
	CursorArrow Cursor = iota
	CursorSizeHorizontal
	CursorSizeVertical
	CursorSizeDiagonalForward
	CursorSizeDiagonalBackward
)

func (c Cursor) String() string {
	switch c {
	case CursorSizeHorizontal:
		return "size-hor"
	case CursorSizeVertical:
		return "size-ver"
	case CursorSizeDiagonalForward:
		return "size-fdiag"
	case CursorSizeDiagonalBackward:
		return "size-bdiag"
	}
	return "arrow"
}

// CursorFor maps an edge to its resize cursor.
func CursorFor(e Edge) Cursor {
	switch e {
	case EdgeTop, EdgeBottom:
		return CursorSizeVertical
	case EdgeLeft, EdgeRight:
		return CursorSizeHorizontal
	case EdgeTopLeft, EdgeBottomRight:
		return CursorSizeDiagonalForward
	case EdgeTopRight, EdgeBottomLeft:
		return CursorSizeDiagonalBackward
	}
	return CursorArrow
}
