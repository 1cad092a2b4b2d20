// Package render draws the stack as isometric wireframe boxes on a
// half-block terminal canvas.
package render

import (
	"slices"

	"github.com/tomz197/towerstack/internal/object"
)

// Box is a terminal mesh: an axis-aligned box with a center and a scale
// relative to its creation size.
type Box struct {
	size     object.Vec3
	pos      object.Vec3
	scale    object.Vec3
	disposed bool
}

// Compile-time check that Box implements object.Mesh.
var _ object.Mesh = (*Box)(nil)

// SetPosition moves the box center.
func (b *Box) SetPosition(p object.Vec3) { b.pos = p }

// SetScale scales the box relative to its creation size.
func (b *Box) SetScale(s object.Vec3) { b.scale = s }

// Dispose marks the box as released. Disposed boxes are never drawn.
func (b *Box) Dispose() { b.disposed = true }

// Position returns the box center.
func (b *Box) Position() object.Vec3 { return b.pos }

// Size returns the scaled box extents.
func (b *Box) Size() object.Vec3 {
	return object.Vec3{X: b.size.X * b.scale.X, Y: b.size.Y * b.scale.Y, Z: b.size.Z * b.scale.Z}
}

// Disposed reports whether Dispose was called.
func (b *Box) Disposed() bool { return b.disposed }

// Scene holds the boxes currently shown.
type Scene struct {
	boxes []*Box
	order []*Box // Reusable buffer for back-to-front sorting
}

// Compile-time check that Scene implements object.Scene.
var _ object.Scene = (*Scene)(nil)

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// CreateBox creates a box mesh that is not yet part of the scene.
func (s *Scene) CreateBox(size object.Vec3) object.Mesh {
	return &Box{size: size, scale: object.Vec3{X: 1, Y: 1, Z: 1}}
}

// Add shows a mesh created by this package. Foreign meshes are ignored.
func (s *Scene) Add(m object.Mesh) {
	b, ok := m.(*Box)
	if !ok || slices.Contains(s.boxes, b) {
		return
	}
	s.boxes = append(s.boxes, b)
}

// Remove hides a mesh.
func (s *Scene) Remove(m object.Mesh) {
	b, ok := m.(*Box)
	if !ok {
		return
	}
	s.boxes = slices.DeleteFunc(s.boxes, func(o *Box) bool { return o == b })
}

// Len returns the number of boxes in the scene.
func (s *Scene) Len() int { return len(s.boxes) }

// Boxes returns the boxes in insertion order. The slice must not be modified.
func (s *Scene) Boxes() []*Box { return s.boxes }
