package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/towerstack/internal/config"
	"github.com/tomz197/towerstack/internal/object"
	"github.com/tomz197/towerstack/internal/physics"
	"github.com/tomz197/towerstack/internal/render"
)

type fixture struct {
	scene *render.Scene
	world *physics.World
	m     *Manager
}

func newFixture() fixture {
	t := config.DefaultTuning()
	scene := render.NewScene()
	world := physics.NewWorld(t.Gravity)
	return fixture{scene: scene, world: world, m: NewManager(scene, world, t)}
}

func TestNewManagerSeedsTwoLayers(t *testing.T) {
	f := newFixture()

	require.Equal(t, 2, f.m.Len())
	assert.Equal(t, object.Vec3{}, f.m.Prev().Position)
	assert.Equal(t, object.Vec3{X: -8, Y: 1}, f.m.Top().Position)
	for _, l := range f.m.Layers() {
		assert.Equal(t, object.AxisX, l.Direction)
		assert.Equal(t, 3.0, l.Width)
		assert.Equal(t, 3.0, l.Depth)
		assert.False(t, l.Falling)
	}
	assert.Empty(t, f.m.Overhangs())
	assert.Equal(t, 2, f.scene.Len())
	assert.Equal(t, 2, f.world.Len())
}

func TestAddLayerHeight(t *testing.T) {
	f := newFixture()

	for i := 0; i < 5; i++ {
		before := f.m.Len()
		l := f.m.AddLayer(1, 2, 2, 3, object.AxisZ)
		assert.Equal(t, before+1, f.m.Len())
		assert.Equal(t, float64(before), l.Position.Y)
		assert.Same(t, l, f.m.Top())
		assert.Equal(t, object.AxisZ, l.Direction)
	}
}

func TestCutTop(t *testing.T) {
	f := newFixture()
	top := f.m.Top()
	top.SetPosition(object.Vec3{X: -1, Y: 1})

	r := ComputeOverlap(top, f.m.Prev())
	f.m.CutTop(r.Overlap, r.Size, r.Delta)

	assert.Equal(t, 2.0, top.Width)
	assert.Equal(t, 3.0, top.Depth)
	assert.Equal(t, object.Vec3{X: -0.5, Y: 1}, top.Position)

	box := top.Mesh().(*render.Box)
	assert.InDelta(t, 2, box.Size().X, 1e-9)
	assert.Equal(t, top.Position, box.Position())

	body := top.Body().(*physics.Body)
	assert.Equal(t, physics.BoxAt(top.Position, object.Vec3{X: 1, Y: 0.5, Z: 1.5}), body.Bounds())
}

func TestAddOverhangFallsFromTopHeight(t *testing.T) {
	f := newFixture()
	f.m.AddLayer(0, -8, 3, 3, object.AxisZ)

	o := f.m.AddOverhang(-2.5, 0, 1, 3)

	assert.True(t, o.Falling)
	assert.Equal(t, object.Vec3{X: -2.5, Y: 2}, o.Position)
	assert.Len(t, f.m.Overhangs(), 1)
	assert.Equal(t, 3, f.m.Len(), "overhangs are not layers")
}

func TestStepPhysicsMovesOnlyOverhangs(t *testing.T) {
	f := newFixture()
	o := f.m.AddOverhang(6, 0, 1, 3)
	layer := f.m.Top().Position

	for i := 0; i < 30; i++ {
		f.m.StepPhysics(1.0 / 60.0)
	}

	assert.Less(t, o.Position.Y, 1.0)
	assert.Equal(t, o.Position, o.Mesh().(*render.Box).Position())
	assert.Equal(t, layer, f.m.Top().Position)
}

func TestResetDisposesAndReseeds(t *testing.T) {
	f := newFixture()
	f.m.AddLayer(0, -8, 3, 3, object.AxisZ)
	f.m.AddLayer(-8, 0, 3, 3, object.AxisX)
	o := f.m.AddOverhang(4, 0, 1, 3)
	oldTop := f.m.Top()

	f.m.Reset()

	assert.Equal(t, 2, f.m.Len())
	assert.Empty(t, f.m.Overhangs())
	assert.Equal(t, 2, f.scene.Len())
	assert.Equal(t, 2, f.world.Len())
	assert.True(t, o.Mesh().(*render.Box).Disposed())
	assert.True(t, oldTop.Mesh().(*render.Box).Disposed())
	assert.Equal(t, object.Vec3{X: -8, Y: 1}, f.m.Top().Position)
}

func TestResetIsIdempotent(t *testing.T) {
	f := newFixture()
	f.m.AddLayer(0, -8, 3, 3, object.AxisZ)
	f.m.AddOverhang(4, 0, 1, 3)

	snapshot := func() []object.Block {
		var out []object.Block
		for _, b := range f.m.Layers() {
			out = append(out, object.Block{Position: b.Position, Width: b.Width, Depth: b.Depth, Height: b.Height, Direction: b.Direction})
		}
		return out
	}

	f.m.Reset()
	once := snapshot()
	f.m.Reset()

	assert.Equal(t, once, snapshot())
	assert.Empty(t, f.m.Overhangs())
	assert.Equal(t, 2, f.scene.Len())
	assert.Equal(t, 2, f.world.Len())
}
