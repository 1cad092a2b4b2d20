package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/towerstack/internal/draw"
	"github.com/tomz197/towerstack/internal/object"
)

func testView(height float64) View {
	return View{Height: height, BaseHeight: 4, Units: 10, Width: 120, LogicalH: 80}
}

func TestProjectOriginIsCentered(t *testing.T) {
	p := testView(4).Project(object.Vec3{})
	assert.InDelta(t, 60, p.X, 1e-9)
	assert.InDelta(t, 40, p.Y, 1e-9)
}

func TestProjectAxes(t *testing.T) {
	v := testView(4)
	origin := v.Project(object.Vec3{})

	up := v.Project(object.Vec3{Y: 1})
	assert.InDelta(t, origin.X, up.X, 1e-9)
	assert.Less(t, up.Y, origin.Y, "world up is screen up")

	x := v.Project(object.Vec3{X: 1})
	z := v.Project(object.Vec3{Z: 1})
	assert.Greater(t, x.X, origin.X)
	assert.Less(t, z.X, origin.X)
	assert.InDelta(t, x.Y, z.Y, 1e-9, "x and z recede symmetrically")
}

func TestRaisingCameraPansUp(t *testing.T) {
	low := testView(4).Project(object.Vec3{Y: 3})
	high := testView(7).Project(object.Vec3{Y: 3})
	assert.InDelta(t, low.X, high.X, 1e-9)
	assert.InDelta(t, 3*2*(120.0/10)/math.Sqrt(6), high.Y-low.Y, 1e-9)
}

func TestSceneAddRemove(t *testing.T) {
	s := NewScene()
	m := s.CreateBox(object.Vec3{X: 3, Y: 1, Z: 3})
	s.Add(m)
	s.Add(m)
	require.Equal(t, 1, s.Len())

	s.Remove(m)
	assert.Equal(t, 0, s.Len())
}

func TestBoxScale(t *testing.T) {
	s := NewScene()
	b := s.CreateBox(object.Vec3{X: 3, Y: 1, Z: 3}).(*Box)
	b.SetScale(object.Vec3{X: 2.0 / 3.0, Y: 1, Z: 1})

	size := b.Size()
	assert.InDelta(t, 2, size.X, 1e-9)
	assert.InDelta(t, 3, size.Z, 1e-9)
}

func TestSceneDraw(t *testing.T) {
	s := NewScene()
	b := s.CreateBox(object.Vec3{X: 3, Y: 1, Z: 3})
	b.SetPosition(object.Vec3{})
	s.Add(b)

	c := draw.NewScaledCanvas(120, 40, 120, 80)
	s.Draw(c, testView(4))

	// Top face edge passes over the projected top-front corner.
	corner := testView(4).Project(object.Vec3{X: 1.5, Y: 0.5, Z: 1.5})
	assert.True(t, c.Pixel(int(math.Round(corner.X)), int(math.Round(corner.Y))))

	// Disposed boxes are skipped.
	c.Clear()
	b.Dispose()
	s.Draw(c, testView(4))
	assert.False(t, c.Pixel(int(math.Round(corner.X)), int(math.Round(corner.Y))))
}

func TestConvexHull(t *testing.T) {
	pts := []draw.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	hull := convexHull(pts)
	assert.Len(t, hull, 4)
	assert.NotContains(t, hull, draw.Point{X: 1, Y: 1})
}
