// Package object defines the Block entity and the render and physics
// collaborators a Block is built from.
package object

// Mesh is a render handle for one box. Position is the box center.
type Mesh interface {
	SetPosition(p Vec3)
	// SetScale scales the box relative to the size it was created with.
	SetScale(s Vec3)
	// Dispose releases renderer-side resources. The mesh must already be
	// removed from its scene.
	Dispose()
}

// Scene is the render collaborator.
type Scene interface {
	CreateBox(size Vec3) Mesh
	Add(m Mesh)
	Remove(m Mesh)
}

// Body is a physics handle for one box. Position is the box center.
type Body interface {
	Position() Vec3
	SetPosition(p Vec3)
	// ReplaceShape swaps the collision box for one with new half extents.
	ReplaceShape(halfExtents Vec3)
}

// World is the physics collaborator. Bodies created with mass 0 are static:
// unaffected by gravity but still collidable.
type World interface {
	CreateBody(mass float64, halfExtents Vec3) Body
	AddBody(b Body)
	RemoveBody(b Body)
	Step(dt float64)
}
