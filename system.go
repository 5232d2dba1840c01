package fizz

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TickStats summarizes one System.Tick.
type TickStats struct {
	Spawned int
	Expired int
	Reaped  int
	Live    int
	// Duration is only measured in debug mode.
	Duration time.Duration
}

// System owns the particle world and runs the lifecycle components in their
// fixed per-tick order: spawn, integrate and expire, reap, sync appearance.
type System struct {
	world      donburi.World
	config     Config
	sink       Sink
	spawner    *Spawner
	integrator *Integrator
	reaper     *Reaper
	appearance AppearanceSync
	debug      bool
	last       TickStats
}

// NewSeededRand returns a deterministic generator for tests and replays.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSystem validates cfg and creates a System drawing through sink. A nil
// rng is replaced by an entropy-seeded generator.
func NewSystem(cfg Config, sink Sink, rng *rand.Rand) (*System, error) {
	if sink == nil {
		return nil, errors.New("fizz: nil sink")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &System{
		world:      donburi.NewWorld(),
		config:     cfg,
		sink:       sink,
		spawner:    NewSpawner(cfg, rng, sink),
		integrator: NewIntegrator(sink),
		reaper:     NewReaper(sink),
		appearance: NoopSync{},
	}, nil
}

// World returns the ECS world holding the particles.
func (s *System) World() donburi.World {
	return s.world
}

// Config returns the config the system was created with.
func (s *System) Config() Config {
	return s.config
}

// Spawner returns the system's spawner.
func (s *System) Spawner() *Spawner {
	return s.spawner
}

// LiveCount returns the number of particles not awaiting removal.
func (s *System) LiveCount() int {
	return LiveCount(s.world)
}

// LastStats returns the stats of the most recent Tick.
func (s *System) LastStats() TickStats {
	return s.last
}

// SetAppearanceSync replaces the appearance hook. Nil restores NoopSync.
func (s *System) SetAppearanceSync(a AppearanceSync) {
	if a == nil {
		a = NoopSync{}
	}
	s.appearance = a
}

// SetDebugMode enables or disables per-tick stats on stderr.
func (s *System) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// OnBurst subscribes fn to burst events. Events are delivered at the end of
// the Tick that produced them.
func (s *System) OnBurst(fn func(BurstEvent)) {
	BurstEventType.Subscribe(s.world, func(_ donburi.World, e BurstEvent) {
		fn(e)
	})
}

// OnExpire subscribes fn to expire events.
func (s *System) OnExpire(fn func(ExpireEvent)) {
	ExpireEventType.Subscribe(s.world, func(_ donburi.World, e ExpireEvent) {
		fn(e)
	})
}

// Burst spawns one burst at pos immediately, outside the timer and trigger.
func (s *System) Burst(pos mgl64.Vec3) int {
	return s.spawner.Burst(s.world, pos)
}

// Tick advances the simulation by dt seconds.
func (s *System) Tick(dt float64, host Host) TickStats {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	var st TickStats
	st.Spawned = s.spawner.Update(s.world, dt, host)
	st.Expired = s.integrator.Step(s.world, dt)
	st.Reaped = s.reaper.Sweep(s.world)
	s.syncAppearance()
	events.ProcessAllEvents(s.world)
	st.Live = LiveCount(s.world)

	if s.debug {
		st.Duration = time.Since(t0)
		s.debugLog(st)
	}
	s.last = st
	return st
}

// syncAppearance runs the appearance hook over every live particle.
func (s *System) syncAppearance() {
	liveParticles.Each(s.world, func(entry *donburi.Entry) {
		if !entry.HasComponent(Visual) {
			return
		}
		v := Visual.Get(entry)
		if s.appearance.Sync(Particle.Get(entry), v) {
			s.sink.SetAppearance(v.ID, v.Appearance.Color, v.Appearance.Size)
		}
	})
}

// Reset expires and removes every particle and rewinds the spawn timer.
// Returns the number of particles removed.
func (s *System) Reset() int {
	var live []donburi.Entity
	liveParticles.Each(s.world, func(entry *donburi.Entry) {
		live = append(live, entry.Entity())
	})
	for _, e := range live {
		s.world.Entry(e).AddComponent(PendingRemoval)
	}
	s.spawner.Timer().Reset()
	return s.reaper.Sweep(s.world)
}
