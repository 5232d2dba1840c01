package fizz

import "math"

// SpawnTimer is a repeating interval timer driven by per-tick deltas.
type SpawnTimer struct {
	interval float64
	elapsed  float64
	finished int
}

// NewSpawnTimer creates a timer with the given period in seconds.
func NewSpawnTimer(interval float64) *SpawnTimer {
	return &SpawnTimer{interval: interval}
}

// Interval returns the timer period in seconds.
func (t *SpawnTimer) Interval() float64 {
	return t.interval
}

// Elapsed returns the time accumulated toward the next firing.
func (t *SpawnTimer) Elapsed() float64 {
	return t.elapsed
}

// Tick advances the timer by dt seconds and reports whether at least one
// interval completed. Elapsed time wraps around the interval, so a long tick
// completes several intervals but still fires once; TimesFinished reports how
// many. A non-positive interval fires on every tick.
func (t *SpawnTimer) Tick(dt float64) bool {
	if dt < 0 {
		dt = 0
	}
	if t.interval <= 0 {
		t.finished = 1
		return true
	}
	t.elapsed += dt
	if t.elapsed < t.interval {
		t.finished = 0
		return false
	}
	n := math.Floor(t.elapsed / t.interval)
	t.elapsed -= n * t.interval
	if t.elapsed < 0 {
		t.elapsed = 0
	}
	t.finished = int(n)
	return true
}

// TimesFinished returns the number of intervals completed by the last Tick.
func (t *SpawnTimer) TimesFinished() int {
	return t.finished
}

// Reset clears accumulated time.
func (t *SpawnTimer) Reset() {
	t.elapsed = 0
	t.finished = 0
}
