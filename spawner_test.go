package fizz

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

func collectParticles(w donburi.World) []*donburi.Entry {
	var out []*donburi.Entry
	liveParticles.Each(w, func(e *donburi.Entry) {
		out = append(out, e)
	})
	return out
}

func TestAmbientSpawnerBurst(t *testing.T) {
	cfg := AmbientConfig()
	sink := newRecordingSink()
	w := donburi.NewWorld()
	s := NewSpawner(cfg, NewSeededRand(1), sink)

	n := s.Update(w, cfg.SpawnInterval, NoHost{})
	if n != 10 {
		t.Fatalf("spawned %d, want 10", n)
	}
	if LiveCount(w) != 10 || sink.created != 10 {
		t.Fatalf("live %d, created %d; want 10", LiveCount(w), sink.created)
	}

	var mesh *Mesh
	for _, e := range collectParticles(w) {
		p := Particle.Get(e)
		v := Visual.Get(e)
		if p.Lifespan != cfg.Lifespan || p.InitialLifespan != cfg.Lifespan {
			t.Errorf("lifespan = %v/%v, want %v", p.Lifespan, p.InitialLifespan, cfg.Lifespan)
		}
		assertVec3(t, "acceleration", p.Acceleration, Gravity)
		assertVec3(t, "position", Position.Get(e).Translation, cfg.Origin)
		if !cfg.VelocityX.Contains(p.Velocity.X()) || !cfg.VelocityY.Contains(p.Velocity.Y()) || p.Velocity.Z() != 0 {
			t.Errorf("velocity %v outside configured ranges", p.Velocity)
		}
		c := v.Appearance.Color
		if c.R != c.G || c.B != 1 || c.A != 1 || c.R < 0.8 || c.R > 1 {
			t.Errorf("color %+v not (1-o, 1-o, 1, 1) with o in [0, 0.2]", c)
		}
		if v.Appearance.Size != cfg.QuadSize {
			t.Errorf("size = %v, want %v", v.Appearance.Size, cfg.QuadSize)
		}
		if mesh == nil {
			mesh = v.Mesh
		} else if v.Mesh != mesh {
			t.Error("particles of one burst do not share a mesh")
		}
	}
	if mesh.Refs() != 10 {
		t.Errorf("mesh refs = %d, want one per particle", mesh.Refs())
	}
}

func TestSpawnerVelocityRange(t *testing.T) {
	cfg := AmbientConfig()
	cfg.Count = 10000
	w := donburi.NewWorld()
	s := NewSpawner(cfg, NewSeededRand(99), newRecordingSink())
	s.Burst(w, mgl64.Vec3{})

	checked := 0
	for _, e := range collectParticles(w) {
		v := Particle.Get(e).Velocity
		if v.X() < -1 || v.X() > 1 {
			t.Fatalf("x velocity %v outside [-1, 1]", v.X())
		}
		if v.Y() < 1 || v.Y() > 3 {
			t.Fatalf("y velocity %v outside [1, 3]", v.Y())
		}
		checked++
	}
	if checked != 10000 {
		t.Errorf("checked %d particles, want 10000", checked)
	}
}

func TestSpawnerNeverCreatesDeadParticles(t *testing.T) {
	cfg := AmbientConfig()
	cfg.Lifespan = 0.01
	w := donburi.NewWorld()
	s := NewSpawner(cfg, NewSeededRand(3), newRecordingSink())
	for i := 0; i < 20; i++ {
		s.Update(w, 1.0/60.0, NoHost{})
	}
	for _, e := range collectParticles(w) {
		if Particle.Get(e).Lifespan <= 0 {
			t.Fatal("spawner created a particle with non-positive lifespan")
		}
	}
}

func TestSpawnerWaitsForTimer(t *testing.T) {
	cfg := AmbientConfig()
	cfg.SpawnInterval = 1
	w := donburi.NewWorld()
	s := NewSpawner(cfg, NewSeededRand(1), newRecordingSink())
	if n := s.Update(w, 0.5, NoHost{}); n != 0 {
		t.Errorf("spawned %d before timer fired", n)
	}
	if n := s.Update(w, 0.5, NoHost{}); n != 10 {
		t.Errorf("spawned %d when timer fired, want 10", n)
	}
}

func TestInteractiveSpawnerGating(t *testing.T) {
	cfg := InteractiveConfig()
	w := donburi.NewWorld()
	sink := newRecordingSink()
	s := NewSpawner(cfg, NewSeededRand(1), sink)
	host := newFakeHost(800, 600)
	dt := 1.0 / 60.0

	// Button up: nothing.
	host.pointer = mgl64.Vec2{400, 300}
	host.hasPointer = true
	if n := s.Update(w, dt, host); n != 0 {
		t.Errorf("spawned %d with button up", n)
	}

	// Button held but pointer unknown: skipped.
	host.held[MouseButtonLeft] = true
	host.hasPointer = false
	if n := s.Update(w, dt, host); n != 0 {
		t.Errorf("spawned %d without pointer", n)
	}

	// No camera: skipped.
	host.hasPointer = true
	host.hasCamera = false
	if n := s.Update(w, dt, host); n != 0 {
		t.Errorf("spawned %d without camera", n)
	}

	// Degenerate viewport: skipped.
	host.hasCamera = true
	host.camera.Viewport = Viewport{}
	if n := s.Update(w, dt, host); n != 0 {
		t.Errorf("spawned %d with empty viewport", n)
	}

	// Nil host: skipped.
	if n := s.Update(w, dt, nil); n != 0 {
		t.Errorf("spawned %d with nil host", n)
	}
	if sink.created != 0 {
		t.Fatalf("sink saw %d creates while gated", sink.created)
	}
}

func TestInteractiveSpawnerAtPointer(t *testing.T) {
	cfg := InteractiveConfig()
	w := donburi.NewWorld()
	s := NewSpawner(cfg, NewSeededRand(1), newRecordingSink())
	host := newFakeHost(800, 600)
	host.press(600, 150)

	if n := s.Update(w, 1.0/60.0, host); n != 1 {
		t.Fatalf("spawned %d, want 1", n)
	}
	e := collectParticles(w)[0]
	assertVec3(t, "position", Position.Get(e).Translation, mgl64.Vec3{200, 150, 0})
}

func TestSpawnerRespectsConfiguredButton(t *testing.T) {
	cfg := InteractiveConfig()
	cfg.Button = MouseButtonRight
	w := donburi.NewWorld()
	s := NewSpawner(cfg, NewSeededRand(1), newRecordingSink())
	host := newFakeHost(800, 600)
	host.press(10, 10) // left button
	if n := s.Update(w, 1, host); n != 0 {
		t.Errorf("spawned %d on wrong button", n)
	}
	host.held[MouseButtonRight] = true
	if n := s.Update(w, 1, host); n != 1 {
		t.Errorf("spawned %d on configured button, want 1", n)
	}
}

func TestSpawnerZeroCountAllocatesNothing(t *testing.T) {
	cfg := AmbientConfig()
	cfg.Count = 0
	sink := newRecordingSink()
	w := donburi.NewWorld()
	s := NewSpawner(cfg, NewSeededRand(1), sink)
	if n := s.Update(w, 1, NoHost{}); n != 0 || sink.created != 0 {
		t.Errorf("spawned %d, created %d", n, sink.created)
	}
}

func TestSpawnerDeterministicWithSeed(t *testing.T) {
	run := func() []mgl64.Vec3 {
		w := donburi.NewWorld()
		s := NewSpawner(AmbientConfig(), NewSeededRand(1234), newRecordingSink())
		s.Burst(w, mgl64.Vec3{})
		var out []mgl64.Vec3
		for _, e := range collectParticles(w) {
			out = append(out, Particle.Get(e).Velocity)
		}
		return out
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	// Entity iteration order is stable within an archetype.
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("velocity %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}
