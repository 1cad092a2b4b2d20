package render

import (
	"cmp"
	"math"
	"slices"

	"github.com/tomz197/towerstack/internal/draw"
	"github.com/tomz197/towerstack/internal/object"
)

var (
	invSqrt2 = 1 / math.Sqrt2
	invSqrt6 = 1 / math.Sqrt(6)
)

// View is an orthographic camera placed at (d, Height, d) looking down the
// (-1, -1, -1) diagonal. Raising Height pans the picture up without changing
// the viewing angle.
type View struct {
	Height     float64 // Camera height in world units
	BaseHeight float64 // Height at which the world origin is centered
	Units      float64 // World units across the viewport width
	Width      float64 // Logical viewport width
	LogicalH   float64 // Logical viewport height
}

// Project maps a world point to logical canvas coordinates.
func (v View) Project(p object.Vec3) draw.Point {
	scale := v.Width / v.Units
	right := (p.X - p.Z) * invSqrt2
	up := (-p.X + 2*p.Y - p.Z - 2*(v.Height-v.BaseHeight)) * invSqrt6
	return draw.Point{
		X: v.Width/2 + right*scale,
		Y: v.LogicalH/2 - up*scale,
	}
}

// depth orders boxes back to front: larger values are closer to the camera.
func depth(b *Box) float64 {
	return b.pos.X + b.pos.Y + b.pos.Z
}

// Draw renders every live box onto the canvas, back to front. Each box first
// erases its silhouette, then outlines its three camera-facing faces.
func (s *Scene) Draw(c *draw.Canvas, v View) {
	s.order = append(s.order[:0], s.boxes...)
	slices.SortStableFunc(s.order, func(a, b *Box) int {
		return cmp.Compare(depth(a), depth(b))
	})

	var corners [8]draw.Point
	for _, b := range s.order {
		if b.disposed {
			continue
		}
		projectCorners(b, v, &corners)
		c.ErasePolygon(convexHull(corners[:]))
		for _, face := range visibleFaces {
			c.DrawPolygon([]draw.Point{
				corners[face[0]], corners[face[1]], corners[face[2]], corners[face[3]],
			}, false)
		}
	}
}

// Corner index bits: 1 = +x, 2 = +y, 4 = +z.
var visibleFaces = [3][4]int{
	{2, 3, 7, 6}, // top
	{1, 3, 7, 5}, // +x
	{4, 5, 7, 6}, // +z
}

func projectCorners(b *Box, v View, out *[8]draw.Point) {
	half := b.Size().Scale(0.5)
	for i := 0; i < 8; i++ {
		p := b.pos
		p.X += sign(i&1 != 0) * half.X
		p.Y += sign(i&2 != 0) * half.Y
		p.Z += sign(i&4 != 0) * half.Z
		out[i] = v.Project(p)
	}
}

func sign(positive bool) float64 {
	if positive {
		return 1
	}
	return -1
}

// convexHull returns the hull of pts in counter-clockwise order
// (Andrew's monotone chain).
func convexHull(pts []draw.Point) []draw.Point {
	sorted := slices.Clone(pts)
	slices.SortFunc(sorted, func(a, b draw.Point) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})

	cross := func(o, a, b draw.Point) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	hull := make([]draw.Point, 0, 2*len(sorted))
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}
