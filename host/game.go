package host

import (
	"errors"
	"image/color"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/fizz"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// ClearColor fills the screen before particles are drawn. The zero value
	// is opaque black.
	ClearColor fizz.Color
	Blend      BlendMode
	// ExitWhenScriptDone ends Run once an attached Script has finished and
	// no particles remain.
	ExitWhenScriptDone bool
}

// Game is an ebiten.Game that owns a fizz.System and all of its collaborators.
// It is the system's fizz.Host: the pointer comes from Input and the camera
// from Camera.
//
// Keys: R clears every particle, F toggles the fade appearance hook.
type Game struct {
	sys      *fizz.System
	renderer *Renderer
	input    *Input
	camera   *Camera
	script   *Script
	overlay  *overlay

	rc       RunConfig
	fade     bool
	onUpdate func(g *Game, dt float64) error
}

// NewGame builds a system for cfg rendered by a fresh Renderer. A nil rng
// seeds from the runtime.
func NewGame(cfg fizz.Config, rng *rand.Rand, rc RunConfig) (*Game, error) {
	if rc.Width <= 0 || rc.Height <= 0 {
		return nil, errors.New("host: window size must be positive")
	}
	r := NewRenderer()
	r.Blend = rc.Blend
	sys, err := fizz.NewSystem(cfg, r, rng)
	if err != nil {
		return nil, err
	}
	g := &Game{
		sys:      sys,
		renderer: r,
		input:    NewInput(),
		camera:   NewCamera(),
		rc:       rc,
	}
	if rc.ShowFPS {
		g.overlay = &overlay{}
	}
	return g, nil
}

// System returns the particle system.
func (g *Game) System() *fizz.System { return g.sys }

// Renderer returns the sink drawing the particles.
func (g *Game) Renderer() *Renderer { return g.renderer }

// Input returns the pointer state.
func (g *Game) Input() *Input { return g.input }

// Camera returns the world camera.
func (g *Game) Camera() *Camera { return g.camera }

// SetScript attaches an input script. Scripted games ignore the real mouse.
func (g *Game) SetScript(s *Script) {
	g.script = s
	g.input.device = nil
}

// SetUpdateFunc registers fn to run every frame after input and before the
// particle tick. A non-nil error ends the game.
func (g *Game) SetUpdateFunc(fn func(g *Game, dt float64) error) {
	g.onUpdate = fn
}

// SetFade switches between the fade appearance hook and no hook.
func (g *Game) SetFade(enabled bool) {
	g.fade = enabled
	if enabled {
		g.sys.SetAppearanceSync(fizz.NewFadeSync())
	} else {
		g.sys.SetAppearanceSync(nil)
	}
}

// Fade reports whether the fade hook is installed.
func (g *Game) Fade() bool { return g.fade }

// PointerPosition implements fizz.Input.
func (g *Game) PointerPosition() (mgl64.Vec2, bool) { return g.input.PointerPosition() }

// ButtonHeld implements fizz.Input.
func (g *Game) ButtonHeld(b fizz.MouseButton) bool { return g.input.ButtonHeld(b) }

// ActiveCamera implements fizz.CameraSource.
func (g *Game) ActiveCamera() (fizz.Camera, bool) {
	return g.camera.Snapshot(g.rc.Width, g.rc.Height), true
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sys.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.SetFade(!g.fade)
	}
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return g.step(1.0 / float64(tps))
}

// step runs one frame of simulation with a fixed dt.
func (g *Game) step(dt float64) error {
	if g.script != nil {
		g.script.Step(g.input)
	}
	g.input.Update()
	g.camera.Update(float32(dt))
	if g.onUpdate != nil {
		if err := g.onUpdate(g, dt); err != nil {
			return err
		}
	}
	stats := g.sys.Tick(dt, g)
	if g.overlay != nil {
		g.overlay.update(dt, stats.Live)
	}
	if g.rc.ExitWhenScriptDone && g.script != nil && g.script.Done() && stats.Live == 0 {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(toRGBA(g.rc.ClearColor))
	g.renderer.Draw(screen, g.camera.Snapshot(g.rc.Width, g.rc.Height))
	if g.overlay != nil {
		g.overlay.draw(screen)
	}
}

// Layout implements ebiten.Game. The logical screen always matches RunConfig.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.rc.Width, g.rc.Height
}

// Run opens a window and runs g until the window closes or the game ends.
func Run(g *Game) error {
	ebiten.SetWindowTitle(g.rc.Title)
	ebiten.SetWindowSize(g.rc.Width, g.rc.Height)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// toRGBA converts a straight-alpha Color to a premultiplied color.RGBA. The
// zero Color maps to opaque black.
func toRGBA(c fizz.Color) color.RGBA {
	if c == (fizz.Color{}) {
		return color.RGBA{A: 255}
	}
	clamp := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.RGBA{R: clamp(c.R * c.A), G: clamp(c.G * c.A), B: clamp(c.B * c.A), A: clamp(c.A)}
}
