package client

import (
	"math"

	"github.com/tomz197/blastar/internal/draw"
	"github.com/tomz197/blastar/internal/loop/config"
	"github.com/tomz197/blastar/internal/match"
	"github.com/tomz197/blastar/internal/object"
)

// toView maps world coordinates (origin at the scene center, y up) to the
// canvas's logical space (origin top-left, y down).
func toView(x, y float64) draw.Point {
	return draw.Point{
		X: (x + match.SceneWidth/2) / config.ViewScale,
		Y: (match.SceneHeight/2 - y) / config.ViewScale,
	}
}

// drawScene draws every visual of a snapshot.
func drawScene(c *draw.Canvas, visuals []match.Visual, band object.Band) {
	for _, v := range visuals {
		switch v.Kind {
		case object.KindGround:
			drawGround(c, v, band)
		case object.KindHazard:
			drawHazard(c, v)
		case object.KindProjectile:
			drawProjectile(c, v)
		case object.KindPlayer:
			drawShip(c, v)
		}
	}
}

// bandColor returns the HUD and ground color for a health band.
func bandColor(b object.Band) draw.Color {
	switch b {
	case object.BandHealthy:
		return draw.ColorGreen
	case object.BandWarning:
		return draw.ColorYellow
	default:
		return draw.ColorRed
	}
}

func drawGround(c *draw.Canvas, v match.Visual, band object.Band) {
	c.SetColor(bandColor(band))
	tl := toView(v.X-v.W/2, v.Y+v.H/2)
	c.DrawRect(tl.X, tl.Y, v.W/config.ViewScale, v.H/config.ViewScale, true)
}

func drawProjectile(c *draw.Canvas, v match.Visual) {
	c.SetColor(draw.ColorBrightYellow)
	tl := toView(v.X-v.W/2, v.Y+v.H/2)
	c.DrawRect(tl.X, tl.Y, v.W/config.ViewScale, v.H/config.ViewScale, true)
}

// shipShape is the ship outline in units of its half extents, nose up.
var shipShape = []draw.Point{
	{X: 0, Y: 1},
	{X: 0.35, Y: 0.1},
	{X: 1, Y: -0.6},
	{X: 1, Y: -1},
	{X: 0.3, Y: -0.7},
	{X: -0.3, Y: -0.7},
	{X: -1, Y: -1},
	{X: -1, Y: -0.6},
	{X: -0.35, Y: 0.1},
}

func drawShip(c *draw.Canvas, v match.Visual) {
	c.SetColor(draw.ColorBrightCyan)
	pts := c.BorrowPoints(len(shipShape))
	for i, p := range shipShape {
		pts[i] = toView(v.X+p.X*v.W/2, v.Y+p.Y*v.H/2)
	}
	c.DrawPolygon(pts, true)
}

// hazardSpokes is the number of spokes drawn inside a hazard to show its spin.
const hazardSpokes = 3

// fallWarning is the share of the hold after which a hazard flashes its fall.
const fallWarning = 0.75

// hazardColor fades a hazard as it loses hit points and turns it bright red
// shortly before and during its fall.
func hazardColor(v match.Visual) draw.Color {
	if v.Stage == object.StageFalling || (v.Stage == object.StageHolding && v.StageProgress >= fallWarning) {
		return draw.ColorBrightRed
	}
	switch opacity := v.Opacity; {
	case opacity > 0.99:
		return draw.ColorMagenta
	case opacity > 0.5:
		return draw.ColorRed
	default:
		return draw.ColorGray
	}
}

func drawHazard(c *draw.Canvas, v match.Visual) {
	c.SetColor(hazardColor(v))
	center := toView(v.X, v.Y)
	r := v.W / 2 / config.ViewScale
	c.DrawCircle(center, r, false)

	// World rotation is counter-clockwise with y up; view y points down
	for i := 0; i < hazardSpokes; i++ {
		a := v.Rotation + float64(i)*2*math.Pi/hazardSpokes
		tip := draw.Point{X: center.X + r*math.Cos(a), Y: center.Y - r*math.Sin(a)}
		c.DrawLine(center, tip)
	}
}
