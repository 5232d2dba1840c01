package fizz

import "github.com/tanema/gween/ease"

// AppearanceSync lets simulation state drive a particle's appearance. It is
// called once per live particle per tick, after integration. Returning true
// pushes v.Appearance to the sink.
type AppearanceSync interface {
	Sync(p *ParticleData, v *VisualData) bool
}

// AppearanceSyncFunc adapts a function to AppearanceSync.
type AppearanceSyncFunc func(p *ParticleData, v *VisualData) bool

// Sync implements AppearanceSync.
func (f AppearanceSyncFunc) Sync(p *ParticleData, v *VisualData) bool {
	return f(p, v)
}

// NoopSync leaves appearances untouched.
type NoopSync struct{}

// Sync implements AppearanceSync.
func (NoopSync) Sync(*ParticleData, *VisualData) bool { return false }

// FadeSync eases a particle's alpha from 1 to EndAlpha and its size from the
// mesh size to mesh size * EndScale over the particle's lifetime.
type FadeSync struct {
	EndAlpha float64
	EndScale float64
	// Ease shapes the progress curve. Nil means ease.Linear.
	Ease ease.TweenFunc
}

// NewFadeSync returns a linear fade to transparent at constant size.
func NewFadeSync() FadeSync {
	return FadeSync{EndAlpha: 0, EndScale: 1, Ease: ease.Linear}
}

// Sync implements AppearanceSync.
func (f FadeSync) Sync(p *ParticleData, v *VisualData) bool {
	if p.InitialLifespan <= 0 {
		return false
	}
	fn := f.Ease
	if fn == nil {
		fn = ease.Linear
	}
	age := min(max(p.Age(), 0), p.InitialLifespan)
	t := float64(fn(float32(age), 0, 1, float32(p.InitialLifespan)))

	v.Appearance.Color.A = lerp(1, f.EndAlpha, t)
	base := v.Appearance.Size
	if v.Mesh != nil {
		base = v.Mesh.Size()
	}
	v.Appearance.Size = base.Mul(lerp(1, f.EndScale, t))
	return true
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
