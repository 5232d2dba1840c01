package fizz

import "github.com/yohamta/donburi"

// Integrator advances live particles by one tick and tags the ones whose
// lifespan ran out.
type Integrator struct {
	sink    Sink
	expired []donburi.Entity
}

// NewIntegrator creates an integrator mirroring positions to sink.
func NewIntegrator(sink Sink) *Integrator {
	return &Integrator{sink: sink}
}

// Step integrates every particle in w that is not tagged PendingRemoval:
//
//	position += velocity * dt
//	velocity += acceleration * dt
//	lifespan -= dt
//
// The position update uses the velocity from before this tick's acceleration.
// Particles whose lifespan reaches zero or below are tagged PendingRemoval
// after the pass. Returns the number tagged. Negative dt is treated as 0.
func (it *Integrator) Step(w donburi.World, dt float64) int {
	if dt < 0 {
		dt = 0
	}
	it.expired = it.expired[:0]

	liveParticles.Each(w, func(entry *donburi.Entry) {
		p := Particle.Get(entry)
		pos := Position.Get(entry)

		pos.Translation = pos.Translation.Add(p.Velocity.Mul(dt))
		p.Velocity = p.Velocity.Add(p.Acceleration.Mul(dt))
		p.Lifespan -= dt

		if entry.HasComponent(Visual) && it.sink != nil {
			it.sink.SetTransform(Visual.Get(entry).ID, *pos)
		}
		if p.Dead() {
			it.expired = append(it.expired, entry.Entity())
		}
	})

	// Tagging moves the entity to another archetype; never during the query.
	for _, e := range it.expired {
		entry := w.Entry(e)
		entry.AddComponent(PendingRemoval)

		ev := ExpireEvent{Entity: e, Position: Position.Get(entry).Translation}
		if entry.HasComponent(Visual) {
			ev.Visual = Visual.Get(entry).ID
		}
		ExpireEventType.Publish(w, ev)
	}
	return len(it.expired)
}
