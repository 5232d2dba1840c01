// Package snapshot rasterizes particle visuals in software, without a window
// or GPU. A Canvas is a fizz.Sink like the host renderer, so a headless System
// can draw into it and write frames as PNG files.
package snapshot

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/phanxgames/fizz"
)

// Canvas is a fizz.Sink that renders its visuals with gg.
type Canvas struct {
	fizz.VisualTable

	// Background fills the frame before particles are drawn. The zero value
	// is opaque black.
	Background fizz.Color

	width, height int
}

// NewCanvas creates a canvas producing width x height frames.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{width: width, height: height}
}

// Size returns the frame size in pixels.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Camera returns a camera centered on (x, y) covering the whole frame at the
// given zoom. Zoom values of zero or below mean 1.
func (c *Canvas) Camera(x, y, zoom float64) fizz.Camera {
	proj := fizz.NewOrthographic(float64(c.width), float64(c.height))
	if zoom > 0 {
		proj.Scale = zoom
	}
	return fizz.Camera{
		Viewport:   fizz.Viewport{Width: float64(c.width), Height: float64(c.height)},
		Transform:  fizz.TransformAt(x, y, 0),
		Projection: proj,
	}
}

// Render draws every visible visual, in creation order, as seen through cam.
func (c *Canvas) Render(cam fizz.Camera) image.Image {
	return c.draw(cam).Image()
}

// EncodePNG renders a frame and writes it to w as PNG.
func (c *Canvas) EncodePNG(w io.Writer, cam fizz.Camera) error {
	if err := c.draw(cam).EncodePNG(w); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// SavePNG renders a frame and writes it to path.
func (c *Canvas) SavePNG(path string, cam fizz.Camera) error {
	if err := c.draw(cam).SavePNG(path); err != nil {
		return fmt.Errorf("save snapshot %s: %w", path, err)
	}
	return nil
}

func (c *Canvas) draw(cam fizz.Camera) *gg.Context {
	dc := gg.NewContext(c.width, c.height)
	bg := c.Background
	if bg == (fizz.Color{}) {
		bg = fizz.Color{A: 1}
	}
	dc.SetRGBA(bg.R, bg.G, bg.B, bg.A)
	dc.Clear()

	c.Each(func(v *fizz.VisualRecord) {
		if !v.Visible() {
			return
		}
		q := v.ScreenQuad(cam)
		x0, y0 := math.Min(q[0].X(), q[3].X()), math.Min(q[0].Y(), q[3].Y())
		x1, y1 := math.Max(q[0].X(), q[3].X()), math.Max(q[0].Y(), q[3].Y())
		col := v.Appearance.Color
		dc.SetRGBA(col.R, col.G, col.B, col.A)
		dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
		dc.Fill()
	})
	return dc
}
