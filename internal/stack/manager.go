package stack

import (
	"github.com/tomz197/towerstack/internal/config"
	"github.com/tomz197/towerstack/internal/object"
)

// Manager owns the ordered layers and the falling overhangs, together with
// the scene and world their handles live in.
type Manager struct {
	scene  object.Scene
	world  object.World
	tuning config.Tuning

	layers    []*object.Block
	overhangs []*object.Block
}

// NewManager creates a manager seeded with the two starting layers.
func NewManager(scene object.Scene, world object.World, t config.Tuning) *Manager {
	m := &Manager{scene: scene, world: world, tuning: t}
	m.seed()
	return m
}

// seed adds the foundation layer at the origin and the first moving layer at
// the back limit, both travelling along X.
func (m *Manager) seed() {
	size := m.tuning.BoxSize
	m.AddLayer(0, 0, size, size, object.AxisX)
	m.AddLayer(m.tuning.BackLimit, 0, size, size, object.AxisX)
}

// AddLayer appends a static layer one level above the current top.
// The caller picks dir and is responsible for alternating it.
func (m *Manager) AddLayer(x, z, width, depth float64, dir object.Axis) *object.Block {
	h := m.tuning.LayerHeight
	pos := object.Vec3{X: x, Y: h * float64(len(m.layers)), Z: z}
	layer := object.NewBlock(m.scene, m.world, pos, width, h, depth, 0)
	layer.Direction = dir
	m.layers = append(m.layers, layer)
	return layer
}

// CutTop trims the top layer along its direction to overlap and recenters it
// by -delta/2 so it sits over the supported part.
func (m *Manager) CutTop(overlap, size, delta float64) {
	top := m.Top()
	dir := top.Direction
	top.Shrink(dir, overlap, overlap/size)
	top.Translate(dir, -delta/2)
}

// AddOverhang drops a falling block at the top layer's height.
func (m *Manager) AddOverhang(x, z, width, depth float64) *object.Block {
	h := m.tuning.LayerHeight
	pos := object.Vec3{X: x, Y: h * float64(len(m.layers)-1), Z: z}
	overhang := object.NewBlock(m.scene, m.world, pos, width, h, depth, m.tuning.OverhangMass)
	m.overhangs = append(m.overhangs, overhang)
	return overhang
}

// Reset disposes every block and reseeds the two starting layers.
func (m *Manager) Reset() {
	for _, b := range m.layers {
		b.Dispose(m.scene, m.world)
	}
	for _, b := range m.overhangs {
		b.Dispose(m.scene, m.world)
	}
	clear(m.layers)
	clear(m.overhangs)
	m.layers = m.layers[:0]
	m.overhangs = m.overhangs[:0]
	m.seed()
}

// Top returns the layer currently being placed.
func (m *Manager) Top() *object.Block {
	return m.layers[len(m.layers)-1]
}

// Prev returns the layer below the top.
func (m *Manager) Prev() *object.Block {
	return m.layers[len(m.layers)-2]
}

// Len returns the number of layers, seed layers included.
func (m *Manager) Len() int {
	return len(m.layers)
}

// Layers returns the layers bottom to top. The slice must not be modified.
func (m *Manager) Layers() []*object.Block {
	return m.layers
}

// Overhangs returns the falling fragments. The slice must not be modified.
func (m *Manager) Overhangs() []*object.Block {
	return m.overhangs
}
