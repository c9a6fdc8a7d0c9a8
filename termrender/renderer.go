// Package termrender runs grove scenes in a terminal with [tcell]. Scene
// coordinates are mapped onto character cells; node content is a Glyph, a
// rune or a string.
//
// [tcell]: https://github.com/gdamore/tcell
package termrender

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/grove"
)

// Glyph is terminal node content: a W x H block of Rune, measured in cells at
// scale 1. The block is rasterized through the node's world transform, so it
// follows scale, rotation and anchor.
type Glyph struct {
	Rune  rune
	Style tcell.Style
	W, H  int
}

// dimBelow is the opacity under which content is drawn dim.
const dimBelow = 0.5

// Renderer draws node content onto a tcell.Screen. CellW and CellH give the
// size of one cell in scene units.
type Renderer struct {
	Screen       tcell.Screen
	CellW, CellH float64
}

// NewRenderer returns a Renderer mapping a sceneW x sceneH scene onto the
// whole screen.
func NewRenderer(screen tcell.Screen, sceneW, sceneH float64) *Renderer {
	r := &Renderer{Screen: screen}
	r.Fit(sceneW, sceneH)
	return r
}

// Fit rescales cells so a sceneW x sceneH scene fills the screen.
func (r *Renderer) Fit(sceneW, sceneH float64) {
	cols, rows := r.Screen.Size()
	r.CellW = sceneW / float64(max(cols, 1))
	r.CellH = sceneH / float64(max(rows, 1))
}

// DrawNode implements grove.Renderer.
func (r *Renderer) DrawNode(content any, world grove.Affine, opacity float64) {
	switch c := content.(type) {
	case Glyph:
		r.drawGlyph(c, world, opacity)
	case rune:
		r.drawText(string(c), tcell.StyleDefault, world, opacity)
	case string:
		r.drawText(c, tcell.StyleDefault, world, opacity)
	}
}

// cell returns the cell containing scene point (x, y).
func (r *Renderer) cell(x, y float64) (int, int) {
	return int(math.Floor(x / r.CellW)), int(math.Floor(y / r.CellH))
}

func (r *Renderer) drawText(s string, style tcell.Style, world grove.Affine, opacity float64) {
	if opacity < dimBelow {
		style = style.Dim(true)
	}
	x, y := r.cell(world.Translation())
	for i, ch := range []rune(s) {
		r.Screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (r *Renderer) drawGlyph(g Glyph, world grove.Affine, opacity float64) {
	if det := world[0]*world[3] - world[2]*world[1]; math.Abs(det) < 1e-12 {
		return
	}
	style := g.Style
	if opacity < dimBelow {
		style = style.Dim(true)
	}
	w := float64(g.W) * r.CellW
	h := float64(g.H) * r.CellH

	// Cell bounds of the transformed block.
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		x, y := world.Apply(p[0], p[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	cols, rows := r.Screen.Size()
	x0, y0 := r.cell(minX, minY)
	x1, y1 := r.cell(maxX, maxY)
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, cols-1), min(y1, rows-1)

	// A cell is covered when its centre maps inside the block.
	inv := world.Invert()
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			lx, ly := inv.Apply((float64(cx)+0.5)*r.CellW, (float64(cy)+0.5)*r.CellH)
			if lx >= 0 && lx < w && ly >= 0 && ly < h {
				r.Screen.SetContent(cx, cy, g.Rune, nil, style)
			}
		}
	}
}
