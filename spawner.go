package fizz

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// Spawner creates particle bursts when its timer fires and the configured
// trigger holds.
type Spawner struct {
	config Config
	timer  *SpawnTimer
	rng    *rand.Rand
	sink   Sink
}

// NewSpawner creates a spawner. The spawner owns rng for its lifetime; it
// must not be shared with other goroutines.
func NewSpawner(cfg Config, rng *rand.Rand, sink Sink) *Spawner {
	return &Spawner{
		config: cfg,
		timer:  NewSpawnTimer(cfg.SpawnInterval),
		rng:    rng,
		sink:   sink,
	}
}

// Timer returns the spawn timer.
func (s *Spawner) Timer() *SpawnTimer {
	return s.timer
}

// Update advances the spawn timer by dt and, if a burst is due, spawns it into
// w. Returns the number of particles created. Missing pointer or camera state
// suppresses the burst for this tick.
func (s *Spawner) Update(w donburi.World, dt float64, host Host) int {
	if !s.timer.Tick(dt) {
		return 0
	}
	if s.config.Trigger == TriggerPointerHeld {
		if host == nil || !host.ButtonHeld(s.config.Button) {
			return 0
		}
	}
	pos, ok := s.spawnPosition(host)
	if !ok {
		return 0
	}
	return s.Burst(w, pos)
}

// spawnPosition resolves the burst position for the configured placement.
func (s *Spawner) spawnPosition(host Host) (mgl64.Vec3, bool) {
	if s.config.Placement == PlacementOrigin {
		return s.config.Origin, true
	}
	if host == nil {
		return mgl64.Vec3{}, false
	}
	cursor, ok := host.PointerPosition()
	if !ok {
		return mgl64.Vec3{}, false
	}
	cam, ok := host.ActiveCamera()
	if !ok || !cam.Viewport.Valid() || cam.Projection == nil {
		return mgl64.Vec3{}, false
	}
	return WindowToWorld(cam.Viewport, cam.Transform, cam.Projection, cursor), true
}

// Burst spawns Config.Count particles at pos, bypassing the timer and trigger.
// All particles of the burst share one quad mesh.
func (s *Spawner) Burst(w donburi.World, pos mgl64.Vec3) int {
	n := s.config.Count
	if n <= 0 {
		return 0
	}

	mesh := NewQuadMesh(s.config.QuadSize)
	for i := 0; i < n; i++ {
		s.spawnParticle(w, mesh, pos)
	}
	// The burst's own reference; particles keep theirs.
	mesh.Release()

	BurstEventType.Publish(w, BurstEvent{Count: n, Position: pos})
	return n
}

// spawnParticle creates one particle entity and its visual.
func (s *Spawner) spawnParticle(w donburi.World, mesh *Mesh, pos mgl64.Vec3) {
	cfg := &s.config

	velocity := mgl64.Vec3{
		cfg.VelocityX.Random(s.rng),
		cfg.VelocityY.Random(s.rng),
		0,
	}
	offset := cfg.ColorOffset.Random(s.rng)
	appearance := Appearance{
		Color: Color{R: 1 - offset, G: 1 - offset, B: 1, A: 1},
		Size:  cfg.QuadSize,
	}
	transform := Transform{Translation: pos}

	id := s.sink.CreateVisual(mesh.Acquire(), appearance, transform)

	entry := w.Entry(w.Create(Particle, Position, Visual))
	Particle.SetValue(entry, ParticleData{
		Velocity:        velocity,
		Acceleration:    cfg.Acceleration,
		Lifespan:        cfg.Lifespan,
		InitialLifespan: cfg.Lifespan,
	})
	Position.SetValue(entry, transform)
	Visual.SetValue(entry, VisualData{
		ID:         id,
		Mesh:       mesh,
		Appearance: appearance,
	})
}
