package host

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/fizz"
)

// BlendMode selects how particle quads composite onto the frame.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	if b == BlendAdd {
		return ebiten.BlendLighter
	}
	return ebiten.BlendSourceOver
}

// Renderer is a fizz.Sink that draws every visual as a colored quad. All
// quads are submitted in one DrawTriangles32 call per frame, in creation order.
type Renderer struct {
	fizz.VisualTable

	Blend BlendMode

	batchVerts []ebiten.Vertex
	batchInds  []uint32
}

// NewRenderer creates an empty renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Draw renders every visual onto target as seen through cam.
func (r *Renderer) Draw(target *ebiten.Image, cam fizz.Camera) {
	r.buildBatch(cam)
	if len(r.batchVerts) == 0 {
		return
	}
	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = r.Blend.EbitenBlend()
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	target.DrawTriangles32(r.batchVerts, r.batchInds, ensureWhitePixel(), &triOp)
}

// buildBatch fills the vertex and index buffers for the current visuals.
func (r *Renderer) buildBatch(cam fizz.Camera) {
	r.batchVerts = r.batchVerts[:0]
	r.batchInds = r.batchInds[:0]
	r.Each(func(v *fizz.VisualRecord) {
		if v.Visible() {
			r.appendQuad(cam, v)
		}
	})
}

// appendQuad appends the four corners of v and the two triangles covering them.
func (r *Renderer) appendQuad(cam fizz.Camera, v *fizz.VisualRecord) {
	c := v.Appearance.Color

	// Premultiplied RGBA.
	ca := float32(c.A)
	cr := float32(c.R) * ca
	cg := float32(c.G) * ca
	cb := float32(c.B) * ca

	sx := [4]float32{0, 1, 0, 1}
	sy := [4]float32{0, 0, 1, 1}

	base := uint32(len(r.batchVerts))
	for i, p := range v.ScreenQuad(cam) {
		r.batchVerts = append(r.batchVerts, ebiten.Vertex{
			DstX:   float32(p.X()),
			DstY:   float32(p.Y()),
			SrcX:   sx[i],
			SrcY:   sy[i],
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}

	// Two triangles: TL-TR-BL, TR-BR-BL
	r.batchInds = append(r.batchInds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
