package host

import (
	"github.com/phanxgames/fizz"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is the world-space view the particles are drawn through. World Y
// points up; the camera centers on (X, Y).
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = one world unit per pixel, >1 = zoom in).
	Zoom float64

	scrollTween *scrollAnim
}

// NewCamera creates a camera at the world origin with no zoom.
func NewCamera() *Camera {
	return &Camera{Zoom: 1}
}

// ScrollTo animates the camera to the given world position over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.InOutCubic
	}
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// Update advances the scroll animation by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.scrollTween == nil {
		return
	}
	if !c.scrollTween.doneX {
		val, done := c.scrollTween.tweenX.Update(dt)
		c.X = float64(val)
		c.scrollTween.doneX = done
	}
	if !c.scrollTween.doneY {
		val, done := c.scrollTween.tweenY.Update(dt)
		c.Y = float64(val)
		c.scrollTween.doneY = done
	}
	if c.scrollTween.doneX && c.scrollTween.doneY {
		c.scrollTween = nil
	}
}

// Snapshot returns the camera as seen by the coordinate mapper for a
// width x height viewport.
func (c *Camera) Snapshot(width, height int) fizz.Camera {
	w, h := float64(width), float64(height)
	proj := fizz.NewOrthographic(w, h)
	if c.Zoom > 0 {
		proj.Scale = c.Zoom
	}
	return fizz.Camera{
		Viewport:   fizz.Viewport{Width: w, Height: h},
		Transform:  fizz.TransformAt(c.X, c.Y, 0),
		Projection: proj,
	}
}
