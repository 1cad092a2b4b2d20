package game

import "math"

// Pace derives layer speed and the camera target from the stack height.
type Pace struct {
	BaseSpeed        float64
	Growth           float64
	LayerHeight      float64
	CameraBaseHeight float64
}

// Speed returns the per-tick travel for a stack of stackLen layers, signed
// by the travel direction. The two seed layers add no speed.
func (p Pace) Speed(stackLen int, forward bool) float64 {
	s := p.BaseSpeed * (1 + float64(stackLen-2)*p.Growth)
	if !forward {
		return -s
	}
	return s
}

// CameraBound is the height the camera climbs towards.
func (p Pace) CameraBound(stackLen int) float64 {
	return p.LayerHeight*float64(stackLen-2) + p.CameraBaseHeight
}

// Camera tracks the follow height of the view.
type Camera struct {
	Height float64
}

// Follow raises the camera by the magnitude of speed while it is below bound.
// It never moves down and may end up to one step above bound.
func (c *Camera) Follow(bound, speed float64) {
	if c.Height < bound {
		c.Height += math.Abs(speed)
	}
}

// Reset puts the camera back at height.
func (c *Camera) Reset(height float64) {
	c.Height = height
}
