package fizz

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("fizz: invalid config")

// Trigger selects the condition, in addition to the spawn timer, under which
// the spawner emits a burst.
type Trigger uint8

const (
	TriggerTimer       Trigger = iota // fire on every timer tick
	TriggerPointerHeld                // fire on timer ticks while Config.Button is held
)

// Placement selects where a burst is spawned.
type Placement uint8

const (
	PlacementOrigin  Placement = iota // Config.Origin
	PlacementPointer                  // pointer position mapped to world space
)

// Config controls how particles are spawned and how they behave.
type Config struct {
	// SpawnInterval is the spawn timer period in seconds. Zero or negative
	// fires on every tick.
	SpawnInterval float64 `yaml:"spawnInterval"`
	// Trigger gates bursts on input in addition to the timer.
	Trigger Trigger `yaml:"trigger"`
	// Button is the pointer button checked by TriggerPointerHeld.
	Button MouseButton `yaml:"button"`
	// Placement selects the burst position.
	Placement Placement `yaml:"placement"`
	// Origin is the spawn position for PlacementOrigin.
	Origin mgl64.Vec3 `yaml:"origin"`
	// Count is the number of particles per burst.
	Count int `yaml:"count"`
	// VelocityX is the range of initial X velocity in world units per second.
	VelocityX Range `yaml:"velocityX"`
	// VelocityY is the range of initial Y velocity in world units per second.
	VelocityY Range `yaml:"velocityY"`
	// ColorOffset is the range of the per-particle tint offset. A particle's
	// color is (1-offset, 1-offset, 1, 1).
	ColorOffset Range `yaml:"colorOffset"`
	// Acceleration is applied to every particle for its whole lifetime.
	Acceleration mgl64.Vec3 `yaml:"acceleration"`
	// Lifespan is the particle lifetime in seconds.
	Lifespan float64 `yaml:"lifespan"`
	// QuadSize is the size of the shared quad mesh in world units.
	QuadSize mgl64.Vec2 `yaml:"quadSize"`
}

// Gravity is the default particle acceleration.
var Gravity = mgl64.Vec3{0, -9.8, 0}

// DefaultLifespan is the particle lifetime used by both presets.
const DefaultLifespan = 5.0

// InteractiveConfig spawns single particles under the pointer while the left
// button is held.
func InteractiveConfig() Config {
	return Config{
		SpawnInterval: 0.001,
		Trigger:       TriggerPointerHeld,
		Button:        MouseButtonLeft,
		Placement:     PlacementPointer,
		Count:         1,
		VelocityX:     Range{-10, 10},
		VelocityY:     Range{-10, 10},
		ColorOffset:   Range{0, 1},
		Acceleration:  Gravity,
		Lifespan:      DefaultLifespan,
		QuadSize:      mgl64.Vec2{1, 1},
	}
}

// AmbientConfig emits a fountain of ten particles from the origin every frame.
func AmbientConfig() Config {
	return Config{
		SpawnInterval: 1.0 / 60.0,
		Trigger:       TriggerTimer,
		Placement:     PlacementOrigin,
		Count:         10,
		VelocityX:     Range{-1, 1},
		VelocityY:     Range{1, 3},
		ColorOffset:   Range{0, 0.2},
		Acceleration:  Gravity,
		Lifespan:      DefaultLifespan,
		QuadSize:      mgl64.Vec2{10, 10},
	}
}

// PresetConfig returns the named preset ("interactive" or "ambient").
func PresetConfig(name string) (Config, error) {
	switch strings.ToLower(name) {
	case "", "interactive":
		return InteractiveConfig(), nil
	case "ambient":
		return AmbientConfig(), nil
	default:
		return Config{}, fmt.Errorf("unknown preset %q", name)
	}
}

// Validate reports the first invalid field, wrapped around ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Count < 0:
		return fmt.Errorf("%w: count must not be negative, got %d", ErrInvalidConfig, c.Count)
	case !(c.Lifespan > 0):
		return fmt.Errorf("%w: lifespan must be positive, got %v", ErrInvalidConfig, c.Lifespan)
	case c.VelocityX.Min > c.VelocityX.Max:
		return fmt.Errorf("%w: velocityX min %v exceeds max %v", ErrInvalidConfig, c.VelocityX.Min, c.VelocityX.Max)
	case c.VelocityY.Min > c.VelocityY.Max:
		return fmt.Errorf("%w: velocityY min %v exceeds max %v", ErrInvalidConfig, c.VelocityY.Min, c.VelocityY.Max)
	case c.ColorOffset.Min > c.ColorOffset.Max:
		return fmt.Errorf("%w: colorOffset min %v exceeds max %v", ErrInvalidConfig, c.ColorOffset.Min, c.ColorOffset.Max)
	case c.QuadSize.X() <= 0 || c.QuadSize.Y() <= 0:
		return fmt.Errorf("%w: quadSize must be positive, got %v", ErrInvalidConfig, c.QuadSize)
	case c.Trigger > TriggerPointerHeld:
		return fmt.Errorf("%w: unknown trigger %d", ErrInvalidConfig, c.Trigger)
	case c.Placement > PlacementPointer:
		return fmt.Errorf("%w: unknown placement %d", ErrInvalidConfig, c.Placement)
	}
	return nil
}

// ParseConfig decodes a YAML config. The optional "preset" key selects the
// base config that the remaining keys override; it defaults to "interactive".
func ParseConfig(data []byte) (Config, error) {
	var header struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &header); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg, err := PresetConfig(header.Preset)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the YAML config at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// --- YAML enum encoding ---

var (
	triggerNames   = [...]string{"timer", "pointerHeld"}
	placementNames = [...]string{"origin", "pointer"}
)

func (t Trigger) String() string {
	if int(t) < len(triggerNames) {
		return triggerNames[t]
	}
	return fmt.Sprintf("Trigger(%d)", uint8(t))
}

func (p Placement) String() string {
	if int(p) < len(placementNames) {
		return placementNames[p]
	}
	return fmt.Sprintf("Placement(%d)", uint8(p))
}

func lookupName(names []string, value *yaml.Node, kind string) (int, error) {
	var s string
	if err := value.Decode(&s); err != nil {
		return 0, err
	}
	for i, name := range names {
		if strings.EqualFold(s, name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("line %d: unknown %s %q", value.Line, kind, s)
}

// UnmarshalYAML decodes "timer" or "pointerHeld".
func (t *Trigger) UnmarshalYAML(value *yaml.Node) error {
	i, err := lookupName(triggerNames[:], value, "trigger")
	if err != nil {
		return err
	}
	*t = Trigger(i)
	return nil
}

// MarshalYAML encodes the trigger name.
func (t Trigger) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML decodes "origin" or "pointer".
func (p *Placement) UnmarshalYAML(value *yaml.Node) error {
	i, err := lookupName(placementNames[:], value, "placement")
	if err != nil {
		return err
	}
	*p = Placement(i)
	return nil
}

// MarshalYAML encodes the placement name.
func (p Placement) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// UnmarshalYAML decodes "left", "right" or "middle".
func (b *MouseButton) UnmarshalYAML(value *yaml.Node) error {
	i, err := lookupName(mouseButtonNames[:], value, "button")
	if err != nil {
		return err
	}
	*b = MouseButton(i)
	return nil
}

// MarshalYAML encodes the button name.
func (b MouseButton) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}
