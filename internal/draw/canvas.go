package draw

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// Canvas rasterizes scene geometry into terminal cells, two vertical pixels
// per cell via half-block glyphs. Drawing calls take logical coordinates.
type Canvas struct {
	termWidth      int
	termHeight     int
	subPixelHeight int
	pixels         []bool // [y*termWidth + x]
	colors         []Color
	pen            Color

	// Last rendered cell per position; Render sends only differences
	shown []cell
	dirty []bool
	stale bool // Terminal contents unknown

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64
	scaleY        float64

	// Blank columns and rows left of and above the canvas
	offsetCol int
	offsetRow int

	renderBuf       strings.Builder
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// cell is one rendered terminal character. A zero ch is a blank cell.
type cell struct {
	ch    rune
	color Color
}

// NewScaledCanvas returns a canvas of termWidth x termHeight cells that maps a
// logicalWidth x logicalHeight drawing space onto its pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{logicalWidth: logicalWidth, logicalHeight: logicalHeight}
	c.termWidth, c.termHeight = -1, -1
	c.Resize(termWidth, termHeight)
	c.stale = false
	return c
}

// Resize changes the cell grid and rescales the logical space onto it.
// A new grid forgets what the terminal shows.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth, c.termHeight = termWidth, termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]bool, c.subPixelHeight*termWidth)
		c.colors = make([]Color, c.subPixelHeight*termWidth)
		c.shown = make([]cell, termWidth*termHeight)
		c.dirty = make([]bool, termWidth*termHeight)
		c.stale = true
	}
	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset places the canvas origin at terminal cell (col+1, row+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the blank columns left of the canvas.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the blank rows above the canvas.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear erases the pixels and resets the pen.
func (c *Canvas) Clear() {
	clear(c.pixels)
	clear(c.colors)
	c.pen = ColorDefault
}

// ForceRedraw makes the next Render send every set cell, for use after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	clear(c.shown)
	c.stale = true
}

// MarkTextDirty records that text overwrote width cells starting at the
// 1-based canvas position (col, row); the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, width int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+width; x++ {
		if x >= 0 && x < c.termWidth {
			c.dirty[r*c.termWidth+x] = true
		}
	}
}

// SetColor selects the color used by subsequent drawing calls.
func (c *Canvas) SetColor(color Color) {
	c.pen = color
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
		c.colors[y*c.termWidth+x] = c.pen
	}
}

// toPixel maps a logical point to the nearest pixel.
func (c *Canvas) toPixel(p Point) (int, int) {
	return int(math.Round(p.X * c.scaleX)), int(math.Round(p.Y * c.scaleY))
}

// SetFloat sets the pixel nearest to the logical point (x, y).
func (c *Canvas) SetFloat(x, y float64) {
	c.setPixel(c.toPixel(Point{X: x, Y: y}))
}

// DrawLine rasterizes the segment p1-p2 with Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x, y := c.toPixel(p1)
	x2, y2 := c.toPixel(p2)
	dx, dy := abs(x2-x), abs(y2-y)
	stepX, stepY := 1, 1
	if x > x2 {
		stepX = -1
	}
	if y > y2 {
		stepY = -1
	}

	e := dx - dy
	for {
		c.setPixel(x, y)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x += stepX
		}
		if e2 < dx {
			e += dx
			y += stepY
		}
	}
}

// DrawPolygon outlines the closed path through points, filling it first when
// filled is set. Fewer than three points draw nothing.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	prev := points[len(points)-1]
	for _, p := range points {
		c.DrawLine(prev, p)
		prev = p
	}
}

// DrawRect draws an axis-aligned rectangle with its top-left corner at (x, y).
func (c *Canvas) DrawRect(x, y, w, h float64, filled bool) {
	pts := c.BorrowPoints(4)
	pts[0] = Point{X: x, Y: y}
	pts[1] = Point{X: x + w, Y: y}
	pts[2] = Point{X: x + w, Y: y + h}
	pts[3] = Point{X: x, Y: y + h}
	c.DrawPolygon(pts, filled)
}

// DrawCircle approximates a circle with a polygon.
func (c *Canvas) DrawCircle(center Point, radius float64, filled bool) {
	const segments = 20
	pts := c.BorrowPoints(segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / segments
		pts[i] = Point{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	}
	c.DrawPolygon(pts, filled)
}

// fillPolygon sets every pixel whose center lies inside the polygon, using
// even-odd scanlines in pixel space.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	px := c.scaledBuf[:len(points)]
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		px[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
		lo, hi = min(lo, px[i].Y), max(hi, px[i].Y)
	}

	for y := int(math.Floor(lo)); y <= int(math.Ceil(hi)); y++ {
		mid := float64(y) + 0.5
		xs := c.intersectionBuf[:0]
		prev := px[len(px)-1]
		for _, p := range px {
			if (prev.Y <= mid) != (p.Y <= mid) {
				xs = append(xs, prev.X+(mid-prev.Y)/(p.Y-prev.Y)*(p.X-prev.X))
			}
			prev = p
		}
		c.intersectionBuf = xs
		sort.Float64s(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// maxChunkSize keeps each write under a typical MTU.
const maxChunkSize = 1400

// writeChunked sends data to w in pieces of at most maxChunkSize bytes.
func writeChunked(w io.StringWriter, data string) error {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := w.WriteString(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// cellAt returns what the half-block cell at (row, col) should show.
func (c *Canvas) cellAt(row, col int) cell {
	upper := 2*row*c.termWidth + col
	lower := upper + c.termWidth
	top := c.pixels[upper]
	bottom := 2*row+1 < c.subPixelHeight && c.pixels[lower]
	switch {
	case top && bottom:
		return cell{ch: BlockFull, color: c.colors[upper]}
	case top:
		return cell{ch: BlockUpperHalf, color: c.colors[upper]}
	case bottom:
		return cell{ch: BlockLowerHalf, color: c.colors[lower]}
	}
	return cell{}
}

// Render writes the cells that changed since the last Render, plus cells
// marked dirty by text. Cleared cells are overwritten with a space.
func (c *Canvas) Render(w io.StringWriter) error {
	c.renderBuf.Reset()
	pen := ColorDefault

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			idx := row*c.termWidth + col
			next := c.cellAt(row, col)
			repaint := c.dirty[idx] || (c.stale && next.ch != 0)
			c.dirty[idx] = false
			if next == c.shown[idx] && !repaint {
				continue
			}
			c.shown[idx] = next

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			if next.ch == 0 {
				c.renderBuf.WriteByte(' ')
				continue
			}
			if next.color != pen {
				c.renderBuf.WriteString(next.color.Code())
				pen = next.color
			}
			c.renderBuf.WriteRune(next.ch)
		}
	}
	c.stale = false

	if pen != ColorDefault {
		c.renderBuf.WriteString(ColorReset)
	}
	return writeChunked(w, c.renderBuf.String())
}

// RenderBorder frames the canvas when the terminal has spare room around it.
// Each edge is drawn only where its offset leaves a free row or column.
func (c *Canvas) RenderBorder(w io.StringWriter) error {
	left, top := c.offsetCol, c.offsetRow
	right := left + c.termWidth + 1
	bottom := top + c.termHeight + 1
	sides := left >= 1
	caps := top >= 1

	var b strings.Builder
	if caps {
		rule := strings.Repeat("─", c.termWidth)
		if sides {
			fmt.Fprintf(&b, "\033[%d;%dH┌%s┐", top, left, rule)
			fmt.Fprintf(&b, "\033[%d;%dH└%s┘", bottom, left, rule)
		} else {
			fmt.Fprintf(&b, "\033[%d;%dH%s", top, left+1, rule)
			fmt.Fprintf(&b, "\033[%d;%dH%s", bottom, left+1, rule)
		}
	}
	if sides {
		for row := top + 1; row < bottom; row++ {
			fmt.Fprintf(&b, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}
	return writeChunked(w, b.String())
}

// TerminalWidth returns the canvas width in columns.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas height in rows.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// BorrowPoints returns a scratch slice of n points, valid until the next call.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
