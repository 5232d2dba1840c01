package host

import (
	"errors"
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/fizz"
)

const testDT = 1.0 / 60.0

func newTestGame(t *testing.T, cfg fizz.Config) *Game {
	t.Helper()
	g, err := NewGame(cfg, fizz.NewSeededRand(7), RunConfig{Width: 800, Height: 600})
	if err != nil {
		t.Fatal(err)
	}
	g.input = newScriptedInput()
	return g
}

func TestNewGameRejectsBadSize(t *testing.T) {
	if _, err := NewGame(fizz.AmbientConfig(), nil, RunConfig{Width: 0, Height: 10}); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestNewGameRejectsBadConfig(t *testing.T) {
	cfg := fizz.AmbientConfig()
	cfg.Lifespan = 0
	_, err := NewGame(cfg, nil, RunConfig{Width: 10, Height: 10})
	if !errors.Is(err, fizz.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestGameIsHost(t *testing.T) {
	g := newTestGame(t, fizz.InteractiveConfig())
	var _ fizz.Host = g
	cam, ok := g.ActiveCamera()
	if !ok || cam.Viewport.Width != 800 || cam.Viewport.Height != 600 {
		t.Errorf("ActiveCamera = %+v, %v", cam.Viewport, ok)
	}
	if w, h := g.Layout(1920, 1080); w != 800 || h != 600 {
		t.Errorf("Layout = %dx%d, want 800x600", w, h)
	}
}

func TestGameSpawnsWhileHeld(t *testing.T) {
	g := newTestGame(t, fizz.InteractiveConfig())
	g.Input().InjectHold(400, 300, fizz.MouseButtonLeft, 3)
	g.Input().InjectRelease(400, 300)

	for i := 0; i < 6; i++ {
		if err := g.step(testDT); err != nil {
			t.Fatal(err)
		}
	}
	if got := g.System().LiveCount(); got != 3 {
		t.Errorf("LiveCount = %d, want 3", got)
	}
	if got := g.Renderer().Len(); got != 3 {
		t.Errorf("renderer holds %d visuals, want 3", got)
	}
}

func TestGameSpawnsThroughCamera(t *testing.T) {
	g := newTestGame(t, fizz.InteractiveConfig())
	g.Camera().X = 100
	g.Camera().Y = -50

	var burstAt []float64
	g.System().OnBurst(func(e fizz.BurstEvent) {
		burstAt = append(burstAt, e.Position.X(), e.Position.Y())
	})
	g.Input().InjectPress(400, 300, fizz.MouseButtonLeft)
	if err := g.step(testDT); err != nil {
		t.Fatal(err)
	}
	if len(burstAt) != 2 {
		t.Fatalf("got %d bursts, want 1", len(burstAt)/2)
	}
	if !approxEqual(burstAt[0], 100, 1e-6) || !approxEqual(burstAt[1], -50, 1e-6) {
		t.Errorf("burst at (%v,%v), want (100,-50)", burstAt[0], burstAt[1])
	}
}

func TestGameUpdateFunc(t *testing.T) {
	g := newTestGame(t, fizz.AmbientConfig())
	calls := 0
	stop := errors.New("stop")
	g.SetUpdateFunc(func(_ *Game, dt float64) error {
		calls++
		if dt != testDT {
			t.Errorf("dt = %v, want %v", dt, testDT)
		}
		if calls == 2 {
			return stop
		}
		return nil
	})
	if err := g.step(testDT); err != nil {
		t.Fatal(err)
	}
	if err := g.step(testDT); !errors.Is(err, stop) {
		t.Errorf("err = %v, want stop", err)
	}
}

func TestGameSetFade(t *testing.T) {
	g := newTestGame(t, fizz.AmbientConfig())
	g.SetFade(true)
	if !g.Fade() {
		t.Fatal("fade should be on")
	}
	for i := 0; i < 30; i++ {
		if err := g.step(testDT); err != nil {
			t.Fatal(err)
		}
	}
	faded := false
	g.Renderer().Each(func(v *fizz.VisualRecord) {
		if v.Appearance.Color.A < 1 {
			faded = true
		}
	})
	if !faded {
		t.Error("expected some visuals to have faded")
	}
	g.SetFade(false)
	if g.Fade() {
		t.Error("fade should be off")
	}
}

func TestGameScriptEndsRun(t *testing.T) {
	g := newTestGame(t, fizz.InteractiveConfig())
	g.rc.ExitWhenScriptDone = true
	s, err := LoadScript([]byte(`{"steps": [{"action": "click", "x": 400, "y": 300}]}`))
	if err != nil {
		t.Fatal(err)
	}
	g.SetScript(s)

	var end error
	frames := 0
	for ; frames < 600; frames++ {
		if end = g.step(testDT); end != nil {
			break
		}
	}
	if !errors.Is(end, ebiten.Termination) {
		t.Fatalf("step returned %v after %d frames, want Termination", end, frames)
	}
	// The clicked particle lives for DefaultLifespan seconds.
	if frames < 299 {
		t.Errorf("terminated after %d frames, before the particle expired", frames)
	}
	if g.Renderer().Len() != 0 {
		t.Errorf("renderer holds %d visuals after the run", g.Renderer().Len())
	}
}

func TestToRGBA(t *testing.T) {
	tests := []struct {
		in   fizz.Color
		want color.RGBA
	}{
		{fizz.Color{}, color.RGBA{A: 255}},
		{fizz.ColorWhite, color.RGBA{255, 255, 255, 255}},
		{fizz.Color{R: 1, A: 0.5}, color.RGBA{R: 128, A: 128}},
		{fizz.Color{R: 2, G: -1, B: 0, A: 1}, color.RGBA{R: 255, A: 255}},
	}
	for _, tt := range tests {
		if got := toRGBA(tt.in); got != tt.want {
			t.Errorf("toRGBA(%+v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
