package fizz

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the untinted particle color.
var ColorWhite = Color{1, 1, 1, 1}

// Range is a general-purpose min/max range.
// Used by Config for velocity and color sampling.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Random returns a value drawn uniformly from [Min, Max) using rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

var mouseButtonNames = [...]string{"left", "right", "middle"}

// String returns the lower-case button name used in config files.
func (b MouseButton) String() string {
	if int(b) < len(mouseButtonNames) {
		return mouseButtonNames[b]
	}
	return fmt.Sprintf("MouseButton(%d)", uint8(b))
}

// ParseMouseButton parses a button name ("left", "right", "middle").
func ParseMouseButton(s string) (MouseButton, error) {
	for i, name := range mouseButtonNames {
		if strings.EqualFold(s, name) {
			return MouseButton(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mouse button %q", s)
}
