package object

// Block is one stack layer or one falling overhang fragment. It owns exactly
// one Mesh and one Body and keeps them in lockstep until it is disposed.
type Block struct {
	Position  Vec3
	Width     float64
	Depth     float64
	Height    float64
	Direction Axis // Travel axis; meaningless for falling blocks
	Falling   bool

	mesh Mesh
	body Body
}

// NewBlock creates the render and physics representations of a box centered
// at pos and adds both to their scene and world. A positive mass makes the
// block fall.
func NewBlock(scene Scene, world World, pos Vec3, width, height, depth, mass float64) *Block {
	mesh := scene.CreateBox(Vec3{X: width, Y: height, Z: depth})
	mesh.SetPosition(pos)
	scene.Add(mesh)

	body := world.CreateBody(mass, Vec3{X: width / 2, Y: height / 2, Z: depth / 2})
	body.SetPosition(pos)
	world.AddBody(body)

	return &Block{
		Position: pos,
		Width:    width,
		Depth:    depth,
		Height:   height,
		Falling:  mass > 0,
		mesh:     mesh,
		body:     body,
	}
}

// Extent returns the block size along a horizontal axis.
func (b *Block) Extent(a Axis) float64 {
	if a == AxisX {
		return b.Width
	}
	return b.Depth
}

// SetPosition moves the block and both of its handles.
func (b *Block) SetPosition(p Vec3) {
	b.Position = p
	b.mesh.SetPosition(p)
	b.body.SetPosition(p)
}

// Translate moves the block by d along a.
func (b *Block) Translate(a Axis, d float64) {
	b.SetPosition(b.Position.With(a, b.Position.Get(a)+d))
}

// Shrink sets the extent along a to extent. The mesh is rescaled by ratio
// (relative to its creation size) and the body gets a new collision box,
// since physics shapes are replaced rather than scaled.
func (b *Block) Shrink(a Axis, extent, ratio float64) {
	if a == AxisX {
		b.Width = extent
	} else {
		b.Depth = extent
	}
	b.mesh.SetScale(Vec3{X: 1, Y: 1, Z: 1}.With(a, ratio))
	b.body.ReplaceShape(b.HalfExtents())
}

// HalfExtents returns the distance from the center to each face.
func (b *Block) HalfExtents() Vec3 {
	return Vec3{X: b.Width / 2, Y: b.Height / 2, Z: b.Depth / 2}
}

// SyncFromBody copies the simulated body position onto the block and its mesh.
func (b *Block) SyncFromBody() {
	b.Position = b.body.Position()
	b.mesh.SetPosition(b.Position)
}

// Dispose removes and releases both handles together.
func (b *Block) Dispose(scene Scene, world World) {
	scene.Remove(b.mesh)
	b.mesh.Dispose()
	world.RemoveBody(b.body)
}

// Mesh returns the render handle.
func (b *Block) Mesh() Mesh { return b.mesh }

// Body returns the physics handle.
func (b *Block) Body() Body { return b.body }
