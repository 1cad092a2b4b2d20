// Package draw renders to ANSI terminals: a scaled half-block canvas and a
// chunked writer suited to SSH sessions.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI colors used by overlays.
const (
	ColorReset  = "\033[0m"
	ColorBold   = "\033[1m"
	ColorYellow = "\033[33m"
)

// Mouse reporting. Button presses arrive as SGR sequences: ESC [ < b ; x ; y M.
const (
	MouseOn  = "\033[?1000h\033[?1006h"
	MouseOff = "\033[?1000l\033[?1006l"
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
