package fizz

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"github.com/yohamta/donburi/query"
)

// ParticleData is the simulation state of one particle.
type ParticleData struct {
	Velocity     mgl64.Vec3
	Acceleration mgl64.Vec3
	// Lifespan is the remaining lifetime in seconds.
	Lifespan float64
	// InitialLifespan is the lifetime the particle was created with.
	InitialLifespan float64
}

// Age returns the seconds elapsed since the particle was created.
func (p *ParticleData) Age() float64 {
	return p.InitialLifespan - p.Lifespan
}

// Dead reports whether the particle's lifespan has run out.
func (p *ParticleData) Dead() bool {
	return p.Lifespan <= 0
}

// VisualData links a particle to its visual entity in the Sink.
type VisualData struct {
	ID         VisualID
	Mesh       *Mesh
	Appearance Appearance
}

var (
	// Particle holds ParticleData.
	Particle = donburi.NewComponentType[ParticleData]()
	// Position holds the particle's world Transform.
	Position = donburi.NewComponentType[Transform]()
	// Visual holds VisualData.
	Visual = donburi.NewComponentType[VisualData]()
	// PendingRemoval tags an expired particle awaiting the reaper.
	PendingRemoval = donburi.NewTag()
)

var (
	liveParticles = query.NewQuery(filter.And(
		filter.Contains(Particle, Position),
		filter.Not(filter.Contains(PendingRemoval)),
	))
	pendingParticles = query.NewQuery(filter.Contains(PendingRemoval))
)

// LiveCount returns the number of particles in w not tagged PendingRemoval.
func LiveCount(w donburi.World) int {
	return liveParticles.Count(w)
}

// PendingCount returns the number of particles in w tagged PendingRemoval.
func PendingCount(w donburi.World) int {
	return pendingParticles.Count(w)
}
