package fizz

import "github.com/go-gl/mathgl/mgl64"

// VisualID identifies a visual entity owned by a Sink. Zero is never issued.
type VisualID uint64

// Input is the pointer state the spawner polls each tick.
type Input interface {
	// PointerPosition returns the primary pointer in viewport pixels (origin
	// top-left, Y down). ok is false when no pointer is available.
	PointerPosition() (p mgl64.Vec2, ok bool)
	// ButtonHeld reports whether the button is currently pressed.
	ButtonHeld(b MouseButton) bool
}

// CameraSource exposes the host's active camera.
type CameraSource interface {
	// ActiveCamera returns the camera used to map pointer positions. ok is
	// false when there is no active camera or primary viewport.
	ActiveCamera() (cam Camera, ok bool)
}

// Host is the input and camera side of the host engine.
type Host interface {
	Input
	CameraSource
}

// Sink is the rendering side of the host engine. It owns the drawn state of
// every visual entity.
type Sink interface {
	// CreateVisual creates a visual entity drawing mesh with the given
	// appearance at t. The sink must not release mesh; the caller passes an
	// already acquired reference and releases it after DestroyVisual.
	CreateVisual(mesh *Mesh, a Appearance, t Transform) VisualID
	// DestroyVisual destroys a visual entity and its unique resources.
	DestroyVisual(id VisualID)
	// SetAppearance updates the color and size of a visual entity.
	SetAppearance(id VisualID, c Color, size mgl64.Vec2)
	// SetTransform moves a visual entity.
	SetTransform(id VisualID, t Transform)
}

// NoHost is a Host with no pointer and no camera. Timer-triggered configs
// placed at the origin run unchanged under it.
type NoHost struct{}

// PointerPosition implements Input.
func (NoHost) PointerPosition() (mgl64.Vec2, bool) { return mgl64.Vec2{}, false }

// ButtonHeld implements Input.
func (NoHost) ButtonHeld(MouseButton) bool { return false }

// ActiveCamera implements CameraSource.
func (NoHost) ActiveCamera() (Camera, bool) { return Camera{}, false }
