package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, x1, y1 float64) []Point {
	return []Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

// unscaled maps logical coordinates 1:1 onto terminal sub-pixels.
func unscaled(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

func TestCanvasFillAndErase(t *testing.T) {
	c := unscaled(10, 5)
	c.DrawPolygon(square(1, 1, 8, 8), true)
	require.True(t, c.Pixel(4, 4))

	c.ErasePolygon(square(3, 3, 6, 6))
	assert.False(t, c.Pixel(4, 4), "interior erased")
	assert.True(t, c.Pixel(1, 1), "outline outside the erased area kept")
}

func TestCanvasRenderSkipsUnchangedCells(t *testing.T) {
	c := unscaled(4, 2)
	c.DrawLine(Point{X: 0, Y: 0}, Point{X: 3, Y: 0})

	var first bytes.Buffer
	c.Render(&first)
	assert.Equal(t, 4, strings.Count(first.String(), string(BlockUpperHalf)))

	var second bytes.Buffer
	c.Render(&second)
	assert.Empty(t, second.String(), "nothing changed")

	c.Clear()
	var third bytes.Buffer
	c.Render(&third)
	assert.Equal(t, 4, strings.Count(third.String(), " "), "cleared cells are blanked")
}

func TestCanvasForceRedraw(t *testing.T) {
	c := unscaled(3, 2)
	var out bytes.Buffer
	c.Render(&out)
	out.Reset()

	c.ForceRedraw()
	c.Render(&out)
	assert.Equal(t, 6, strings.Count(out.String(), "\033["))
}

func TestCanvasMarkTextDirty(t *testing.T) {
	c := unscaled(5, 2)
	var out bytes.Buffer
	c.Render(&out)
	out.Reset()

	c.MarkTextDirty(2, 1, 3)
	c.MarkTextDirty(0, 9, 3) // off canvas, ignored
	c.Render(&out)
	assert.Equal(t, "\033[1;2H \033[1;3H \033[1;4H ", out.String())
}

func TestCanvasResizeRescales(t *testing.T) {
	c := NewScaledCanvas(10, 5, 20, 20)
	dot := Point{X: 10, Y: 10}
	c.DrawLine(dot, dot)
	assert.True(t, c.Pixel(5, 5))

	c.Resize(20, 10)
	assert.Equal(t, 20, c.TerminalWidth())
	assert.Equal(t, 10, c.TerminalHeight())
	c.DrawLine(dot, dot)
	assert.True(t, c.Pixel(10, 10))
}
