package host

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func assertVec2(t *testing.T, name string, got, want mgl64.Vec2) {
	t.Helper()
	if !approxEqual(got.X(), want.X(), 1e-6) || !approxEqual(got.Y(), want.Y(), 1e-6) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
