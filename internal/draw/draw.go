// Package draw renders to ANSI terminals: a half-block pixel canvas for shapes
// and a chunked writer for text overlays.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is an ANSI foreground color. The zero value is the terminal default.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorMagenta
	ColorBrightRed
	ColorBrightYellow
	ColorBrightCyan
	ColorGray
)

// ColorReset restores the default foreground color.
const ColorReset = "\033[0m"

var colorCodes = [...]string{
	ColorDefault:      "\033[39m",
	ColorRed:          "\033[31m",
	ColorGreen:        "\033[32m",
	ColorYellow:       "\033[33m",
	ColorMagenta:      "\033[35m",
	ColorBrightRed:    "\033[91m",
	ColorBrightYellow: "\033[93m",
	ColorBrightCyan:   "\033[96m",
	ColorGray:         "\033[90m",
}

// Code returns the ANSI escape sequence selecting c.
func (c Color) Code() string {
	if int(c) >= len(colorCodes) {
		return colorCodes[ColorDefault]
	}
	return colorCodes[c]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
