package fizz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Viewport is the size, in pixels, of the window region a camera renders into.
type Viewport struct {
	Width, Height float64
}

// Valid reports whether the viewport has a positive area.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Transform is a world-space placement.
type Transform struct {
	Translation mgl64.Vec3
}

// TransformAt returns a Transform translated to (x, y, z).
func TransformAt(x, y, z float64) Transform {
	return Transform{Translation: mgl64.Vec3{x, y, z}}
}

// Matrix returns the 4x4 affine matrix for the transform.
func (t Transform) Matrix() mgl64.Mat4 {
	return mgl64.Translate3D(t.Translation.Elem())
}

// Projection supplies a camera projection matrix.
type Projection interface {
	ProjectionMatrix() mgl64.Mat4
}

// OrthographicProjection is an axis-aligned orthographic projection in camera
// space. Scale divides the extents; values above 1 zoom in.
type OrthographicProjection struct {
	Left, Right, Bottom, Top float64
	Near, Far                float64
	Scale                    float64
}

// NewOrthographic returns a projection of a width x height region centered on
// the camera, one world unit per pixel.
func NewOrthographic(width, height float64) OrthographicProjection {
	return OrthographicProjection{
		Left:   -width / 2,
		Right:  width / 2,
		Bottom: -height / 2,
		Top:    height / 2,
		Near:   -1000,
		Far:    1000,
		Scale:  1,
	}
}

// ProjectionMatrix implements Projection.
func (p OrthographicProjection) ProjectionMatrix() mgl64.Mat4 {
	s := p.Scale
	if s == 0 {
		s = 1
	}
	return mgl64.Ortho(p.Left/s, p.Right/s, p.Bottom/s, p.Top/s, p.Near, p.Far)
}

// Camera is the host's active camera, as seen by the mapper.
type Camera struct {
	Viewport   Viewport
	Transform  Transform
	Projection Projection
}

// invertibleEpsilon bounds the determinant below which a projection is
// treated as singular.
const invertibleEpsilon = 1e-12

// WindowToWorld converts a viewport pixel coordinate (origin top-left, Y
// down) into a world-space position with Z fixed at 0. The point is taken to
// NDC, placed on the Z=0 plane, unprojected through the inverse projection and
// moved into world space by the camera transform.
//
// Panics if the projection matrix is not invertible.
func WindowToWorld(vp Viewport, cam Transform, proj Projection, p mgl64.Vec2) mgl64.Vec3 {
	ndcX := p.X()/vp.Width*2 - 1
	ndcY := p.Y()/vp.Height*-2 + 1

	m := proj.ProjectionMatrix()
	if math.Abs(m.Det()) < invertibleEpsilon {
		panic("fizz: projection matrix is not invertible")
	}
	world := cam.Matrix().Mul4(m.Inv()).Mul4x1(mgl64.Vec4{ndcX, ndcY, 0, 1})
	return mgl64.Vec3{world.X(), world.Y(), 0}
}

// WorldToWindow is the inverse of WindowToWorld for points on the Z=0 plane.
func WorldToWindow(vp Viewport, cam Transform, proj Projection, w mgl64.Vec3) mgl64.Vec2 {
	view := mgl64.Translate3D(cam.Translation.Mul(-1).Elem())
	clip := proj.ProjectionMatrix().Mul4(view).Mul4x1(mgl64.Vec4{w.X(), w.Y(), 0, 1})
	return mgl64.Vec2{
		(clip.X() + 1) / 2 * vp.Width,
		(1 - clip.Y()) / 2 * vp.Height,
	}
}

// ScreenToWorld maps p through the camera's viewport, transform and projection.
func (c Camera) ScreenToWorld(p mgl64.Vec2) mgl64.Vec3 {
	return WindowToWorld(c.Viewport, c.Transform, c.Projection, p)
}

// WorldToScreen maps a world point to viewport pixels.
func (c Camera) WorldToScreen(w mgl64.Vec3) mgl64.Vec2 {
	return WorldToWindow(c.Viewport, c.Transform, c.Projection, w)
}
