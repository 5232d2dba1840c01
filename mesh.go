package fizz

import "github.com/go-gl/mathgl/mgl64"

// Mesh is a reference-counted quad shared by every particle of a spawn burst.
// It is read-only after creation.
type Mesh struct {
	size     mgl64.Vec2
	refs     int
	released bool
}

// NewQuadMesh creates a quad of the given size holding one reference for the
// caller.
func NewQuadMesh(size mgl64.Vec2) *Mesh {
	return &Mesh{size: size, refs: 1}
}

// Size returns the quad's width and height in world units.
func (m *Mesh) Size() mgl64.Vec2 {
	return m.size
}

// Acquire adds a reference and returns m.
// Acquiring a released mesh is a programming error and panics.
func (m *Mesh) Acquire() *Mesh {
	if m.released {
		panic("fizz: Acquire on released mesh")
	}
	m.refs++
	return m
}

// Release drops a reference and reports whether one was dropped. The mesh is
// released when the last reference goes; later calls return false.
func (m *Mesh) Release() bool {
	if m.released || m.refs == 0 {
		return false
	}
	m.refs--
	if m.refs == 0 {
		m.released = true
	}
	return true
}

// Refs returns the number of live references.
func (m *Mesh) Refs() int {
	return m.refs
}

// Released reports whether the last reference has been dropped.
func (m *Mesh) Released() bool {
	return m.released
}

// Appearance is the render-facing descriptor of a single particle. It is
// copied by value and never shared between particles.
type Appearance struct {
	Color Color
	Size  mgl64.Vec2
}
