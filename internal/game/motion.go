package game

import "github.com/tomz197/towerstack/internal/object"

// Motion drives the top layer back and forth between two limits.
type Motion struct {
	BackLimit  float64
	FrontLimit float64
	Epsilon    float64 // Slack below BackLimit so a layer starting exactly there does not bounce
}

// Advance moves top along its direction by speed (signed) and reports whether
// the new coordinate is past a limit. The caller flips the travel sign for the
// next tick, so a layer may overshoot a limit by up to one tick of travel.
func (m Motion) Advance(top *object.Block, speed float64) (bounce bool) {
	top.Translate(top.Direction, speed)
	p := top.Position.Get(top.Direction)
	return p > m.FrontLimit || p < m.BackLimit-m.Epsilon
}
