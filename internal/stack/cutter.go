// Package stack owns the tower: the placed layers, the falling overhangs and
// the geometry that decides how a dropped layer is cut.
package stack

import (
	"math"

	"github.com/tomz197/towerstack/internal/object"
)

// Outcome tells whether a dropped layer still rests on the one below.
type Outcome int

const (
	Miss Outcome = iota // No remaining support; the game is over
	Cut                 // The layer is trimmed and an overhang may fall
)

func (o Outcome) String() string {
	if o == Cut {
		return "cut"
	}
	return "miss"
}

// CutResult is the outcome of dropping the top layer onto the previous one.
// Fields other than Outcome, Delta, Size and Overlap are only meaningful for Cut.
type CutResult struct {
	Outcome   Outcome
	Direction object.Axis
	Delta     float64 // Top minus previous position along Direction
	Size      float64 // Top extent along Direction before the cut
	Overlap   float64 // Supported extent; <= 0 means Miss

	NewWidth float64
	NewDepth float64

	OverhangSize     float64 // |Delta|
	OverhangShift    float64
	OverhangPosition object.Vec3
	OverhangWidth    float64
	OverhangDepth    float64
}

// HasOverhang reports whether a Cut leaves a piece to drop. A perfect
// placement cuts nothing off.
func (r CutResult) HasOverhang() bool {
	return r.Outcome == Cut && r.OverhangSize > 0
}

// ComputeOverlap decides how top lands on prev. It only reads its inputs.
// An overlap of exactly zero is a Miss.
func ComputeOverlap(top, prev *object.Block) CutResult {
	dir := top.Direction
	delta := top.Position.Get(dir) - prev.Position.Get(dir)
	size := top.Extent(dir)
	overhangSize := math.Abs(delta)
	overlap := size - overhangSize

	r := CutResult{
		Outcome:      Miss,
		Direction:    dir,
		Delta:        delta,
		Size:         size,
		Overlap:      overlap,
		NewWidth:     top.Width,
		NewDepth:     top.Depth,
		OverhangSize: overhangSize,
	}
	if dir == object.AxisX {
		r.NewWidth = overlap
	} else {
		r.NewDepth = overlap
	}
	if overlap <= 0 {
		return r
	}

	r.Outcome = Cut
	r.OverhangShift = sign(delta) * (overlap/2 + overhangSize/2)
	r.OverhangPosition = top.Position.With(dir, top.Position.Get(dir)+r.OverhangShift)
	if dir == object.AxisX {
		r.OverhangWidth, r.OverhangDepth = overhangSize, r.NewDepth
	} else {
		r.OverhangWidth, r.OverhangDepth = r.NewWidth, overhangSize
	}
	return r
}

// sign returns -1, 0 or 1.
func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
