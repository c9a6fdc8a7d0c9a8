// Package ebitenrender runs grove scenes on [Ebitengine]: it draws node
// content stored as *ebiten.Image, maps mouse and keyboard input to scene
// triggers, drives Scene.Update from the game loop and loads images from disk.
//
// [Ebitengine]: https://ebitengine.org
package ebitenrender

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/grove"
)

// Renderer draws *ebiten.Image content onto Target. Content of any other type
// is skipped and counted in Skipped.
type Renderer struct {
	Target  *ebiten.Image
	Skipped int
	op      ebiten.DrawImageOptions
}

// NewRenderer returns a Renderer drawing onto target.
func NewRenderer(target *ebiten.Image) *Renderer {
	return &Renderer{Target: target}
}

// DrawNode implements grove.Renderer.
func (r *Renderer) DrawNode(content any, world grove.Affine, opacity float64) {
	r.DrawTinted(content, world, opacity, grove.ColorWhite)
}

// DrawTinted implements grove.TintRenderer: the image is multiplied by tint
// and then faded by opacity.
func (r *Renderer) DrawTinted(content any, world grove.Affine, opacity float64, tint grove.Color) {
	img, ok := content.(*ebiten.Image)
	if !ok || img == nil {
		r.Skipped++
		return
	}
	r.op.GeoM = GeoM(world)
	r.op.ColorScale = colorScale(tint, opacity)
	r.op.Filter = ebiten.FilterLinear
	r.Target.DrawImage(img, &r.op)
}

// colorScale returns the premultiplied scale for tint at opacity.
func colorScale(tint grove.Color, opacity float64) ebiten.ColorScale {
	var cs ebiten.ColorScale
	a := clamp01(tint.A)
	cs.Scale(float32(clamp01(tint.R)*a), float32(clamp01(tint.G)*a), float32(clamp01(tint.B)*a), float32(a))
	cs.ScaleAlpha(float32(opacity))
	return cs
}

// GeoM converts a grove affine matrix to an ebiten.GeoM.
func GeoM(m grove.Affine) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

func toRGBA(c grove.Color) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

// White is an opaque white background color for RunConfig.
var White color.Color = color.White

// ImageSize returns the pixel size of *ebiten.Image content, or zero for any
// other content.
func ImageSize(content any) image.Point {
	img, ok := content.(*ebiten.Image)
	if !ok || img == nil {
		return image.Point{}
	}
	return img.Bounds().Size()
}
