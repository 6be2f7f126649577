package tabs

import (
	"fmt"
	"math"
)

// Zoom is a zoom level in whole percent. Stepping in integers keeps ten
// steps from 100 at exactly 200.
type Zoom int

const (
	MinZoom     Zoom = 25
	MaxZoom     Zoom = 300
	DefaultZoom Zoom = 100
	HomeZoom    Zoom = 90
	ZoomStep    Zoom = 10
)

func (z Zoom) Clamp() Zoom {
	return min(max(z, MinZoom), MaxZoom)
}

func (z Zoom) In() Zoom  { return (z + ZoomStep).Clamp() }
func (z Zoom) Out() Zoom { return (z - ZoomStep).Clamp() }

// Factor is the engine zoom factor, 1.0 for 100%.
func (z Zoom) Factor() float64 {
	return float64(z) / 100
}

func (z Zoom) Label() string {
	return fmt.Sprintf("%d%%", int(z))
}

// ZoomFromFactor converts an engine factor to the nearest clamped percent.
func ZoomFromFactor(factor float64) Zoom {
	return Zoom(math.Round(factor * 100)).Clamp()
}
