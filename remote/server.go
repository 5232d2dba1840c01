// Package remote runs a fizz particle system headless behind an HTTP API.
//
// A Server steps the simulation at a fixed tick rate, rasterizes frames with
// the snapshot package and serves them, together with live stats, burst and
// pointer controls, a WebSocket stats feed and Prometheus metrics. Use
// NewRouter to build the handler; it starts no goroutines, so it can be
// mounted on httptest servers.
package remote

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/fizz"
	"github.com/phanxgames/fizz/snapshot"
	"golang.org/x/time/rate"
)

// Options configures a Server.
type Options struct {
	// Width and Height are the frame size used for snapshots and for mapping
	// pointer positions.
	Width, Height int
	// Zoom is the camera zoom (1 = one world unit per pixel).
	Zoom float64
	// TPS is the simulation tick rate used by Run.
	TPS int
	// BroadcastEvery is the number of ticks between WebSocket stats messages.
	BroadcastEvery int
	// BurstRate and BurstLimit bound API-triggered bursts (per second, burst size).
	BurstRate  float64
	BurstLimit int
	// CORSOrigins lists allowed browser origins. A trailing * matches any suffix.
	CORSOrigins []string
	// DisableLogging turns off the request logger middleware.
	DisableLogging bool
}

// DefaultOptions returns an 800x600, 60 TPS server broadcasting 10 times a second.
func DefaultOptions() Options {
	return Options{
		Width:          800,
		Height:         600,
		Zoom:           1,
		TPS:            60,
		BroadcastEvery: 6,
		BurstRate:      20,
		BurstLimit:     40,
		CORSOrigins:    []string{"http://localhost:*", "http://127.0.0.1:*"},
	}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = d.Width, d.Height
	}
	if o.Zoom <= 0 {
		o.Zoom = d.Zoom
	}
	if o.TPS <= 0 {
		o.TPS = d.TPS
	}
	if o.BroadcastEvery <= 0 {
		o.BroadcastEvery = d.BroadcastEvery
	}
	if o.BurstRate <= 0 {
		o.BurstRate = d.BurstRate
	}
	if o.BurstLimit <= 0 {
		o.BurstLimit = d.BurstLimit
	}
	if o.CORSOrigins == nil {
		o.CORSOrigins = d.CORSOrigins
	}
	return o
}

// Totals accumulates tick stats since the server started.
type Totals struct {
	Ticks   uint64 `json:"ticks"`
	Spawned uint64 `json:"spawned"`
	Expired uint64 `json:"expired"`
	Reaped  uint64 `json:"reaped"`
}

// Status is the JSON body of /api/status and of WebSocket tick messages.
type Status struct {
	Live     int       `json:"live"`
	Pending  int       `json:"pending"`
	Totals   Totals    `json:"totals"`
	LastTick TickStats `json:"lastTick"`
}

// TickStats is the JSON form of fizz.TickStats.
type TickStats struct {
	Spawned    int     `json:"spawned"`
	Expired    int     `json:"expired"`
	Reaped     int     `json:"reaped"`
	Live       int     `json:"live"`
	DurationMS float64 `json:"durationMs"`
}

// pointerState is the remote pointer, in frame pixels.
type pointerState struct {
	x, y float64
	set  bool
	held [3]bool
}

// Server owns a headless fizz.System. All access to the system goes through
// the server's mutex; Step and the HTTP handlers may run concurrently.
type Server struct {
	mu      sync.Mutex
	sys     *fizz.System
	canvas  *snapshot.Canvas
	pointer pointerState
	totals  Totals
	last    TickStats

	opts    Options
	metrics *metrics
	hub     *Hub
	limiter *rate.Limiter
}

// NewServer creates a server simulating cfg. A nil rng seeds from the runtime.
func NewServer(cfg fizz.Config, rng *rand.Rand, opts Options) (*Server, error) {
	opts = opts.withDefaults()
	canvas := snapshot.NewCanvas(opts.Width, opts.Height)
	sys, err := fizz.NewSystem(cfg, canvas, rng)
	if err != nil {
		return nil, err
	}
	m := newMetrics()
	hub := NewHub(opts.CORSOrigins, m.wsClients.Set)
	hub.onSend = m.wsMessages.Inc
	return &Server{
		sys:     sys,
		canvas:  canvas,
		opts:    opts,
		metrics: m,
		hub:     hub,
		limiter: rate.NewLimiter(rate.Limit(opts.BurstRate), opts.BurstLimit),
	}, nil
}

// Options returns the server's effective options.
func (s *Server) Options() Options { return s.opts }

// SetDebugMode toggles per-tick stats on stderr.
func (s *Server) SetDebugMode(on bool) {
	s.mu.Lock()
	s.sys.SetDebugMode(on)
	s.mu.Unlock()
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// camera returns the fixed camera the server renders and maps through.
func (s *Server) camera() fizz.Camera {
	return s.canvas.Camera(0, 0, s.opts.Zoom)
}

// Step advances the simulation by dt seconds and returns the tick's stats.
// Every BroadcastEvery ticks the status is pushed to WebSocket clients.
func (s *Server) Step(dt float64) fizz.TickStats {
	s.mu.Lock()
	t0 := time.Now()
	st := s.sys.Tick(dt, serverHost{s})
	elapsed := time.Since(t0)

	s.totals.Ticks++
	s.totals.Spawned += uint64(st.Spawned)
	s.totals.Expired += uint64(st.Expired)
	s.totals.Reaped += uint64(st.Reaped)
	s.last = TickStats{
		Spawned:    st.Spawned,
		Expired:    st.Expired,
		Reaped:     st.Reaped,
		Live:       st.Live,
		DurationMS: float64(elapsed) / float64(time.Millisecond),
	}
	s.metrics.observeTick(st, elapsed)
	broadcast := s.totals.Ticks%uint64(s.opts.BroadcastEvery) == 0
	var status Status
	if broadcast {
		status = s.statusLocked()
	}
	s.mu.Unlock()

	if broadcast {
		s.hub.Broadcast("tick", status)
	}
	return st
}

// Run steps the simulation at Options.TPS until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	dt := 1.0 / float64(s.opts.TPS)
	ticker := time.NewTicker(time.Second / time.Duration(s.opts.TPS))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			s.Step(dt)
		}
	}
}

// Status returns the current live count and totals.
func (s *Server) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *Server) statusLocked() Status {
	w := s.sys.World()
	return Status{
		Live:     fizz.LiveCount(w),
		Pending:  fizz.PendingCount(w),
		Totals:   s.totals,
		LastTick: s.last,
	}
}

// Config returns the simulated config.
func (s *Server) Config() fizz.Config {
	return s.sys.Config()
}

// Burst spawns one burst at the world position pos. Returns the number of
// particles created.
func (s *Server) Burst(pos mgl64.Vec3) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.sys.Burst(pos)
	s.metrics.spawned.Add(float64(n))
	return n
}

// SetPointer moves the remote pointer to frame pixel (x, y) and sets the
// held state of b.
func (s *Server) SetPointer(x, y float64, b fizz.MouseButton, held bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointer.x, s.pointer.y = x, y
	s.pointer.set = true
	if int(b) < len(s.pointer.held) {
		s.pointer.held[b] = held
	}
}

// Reset removes every particle. Returns the number removed.
func (s *Server) Reset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.sys.Reset()
	s.metrics.reaped.Add(float64(n))
	s.metrics.live.Set(0)
	return n
}

// encodeSnapshot renders the current frame as PNG.
func (s *Server) encodeSnapshot(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.EncodePNG(w, s.camera())
}

// serverHost is the fizz.Host seen by the simulation during Step. It reads
// server state under the lock Step already holds.
type serverHost struct{ s *Server }

// PointerPosition implements fizz.Input.
func (h serverHost) PointerPosition() (mgl64.Vec2, bool) {
	p := h.s.pointer
	return mgl64.Vec2{p.x, p.y}, p.set
}

// ButtonHeld implements fizz.Input.
func (h serverHost) ButtonHeld(b fizz.MouseButton) bool {
	return int(b) < len(h.s.pointer.held) && h.s.pointer.held[b]
}

// ActiveCamera implements fizz.CameraSource.
func (h serverHost) ActiveCamera() (fizz.Camera, bool) {
	return h.s.camera(), true
}
