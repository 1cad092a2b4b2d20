// Package physics provides a small rigid-body world for falling boxes and the
// axis-aligned box helpers it is built on.
package physics

import "github.com/tomz197/towerstack/internal/object"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max object.Vec3
}

// BoxAt returns the box centered at c with the given half extents.
func BoxAt(c, half object.Vec3) AABB {
	return AABB{
		Min: object.Vec3{X: c.X - half.X, Y: c.Y - half.Y, Z: c.Z - half.Z},
		Max: object.Vec3{X: c.X + half.X, Y: c.Y + half.Y, Z: c.Z + half.Z},
	}
}

// OverlapsXZ checks if two boxes overlap in the horizontal plane.
// Boxes that only share a face do not overlap.
func (a AABB) OverlapsXZ(b AABB) bool {
	return a.Min.X < b.Max.X && b.Min.X < a.Max.X &&
		a.Min.Z < b.Max.Z && b.Min.Z < a.Max.Z
}

// Overlaps checks if two boxes share any volume.
func (a AABB) Overlaps(b AABB) bool {
	return a.OverlapsXZ(b) && a.Min.Y < b.Max.Y && b.Min.Y < a.Max.Y
}
