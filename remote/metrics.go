package remote

import (
	"time"

	"github.com/phanxgames/fizz"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are registered per server so several servers (and tests) can
// coexist in one process.
type metrics struct {
	registry *prometheus.Registry

	tickDuration   prometheus.Histogram
	spawned        prometheus.Counter
	expired        prometheus.Counter
	reaped         prometheus.Counter
	live           prometheus.Gauge
	burstsRejected prometheus.Counter
	wsClients      prometheus.Gauge
	wsMessages     prometheus.Counter
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &metrics{
		registry: reg,
		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "fizz_tick_duration_seconds",
			Help:    "Time spent in System.Tick",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
		spawned: f.NewCounter(prometheus.CounterOpts{
			Name: "fizz_particles_spawned_total",
			Help: "Particles created by the spawner or the burst API",
		}),
		expired: f.NewCounter(prometheus.CounterOpts{
			Name: "fizz_particles_expired_total",
			Help: "Particles tagged for removal after their lifespan ran out",
		}),
		reaped: f.NewCounter(prometheus.CounterOpts{
			Name: "fizz_particles_reaped_total",
			Help: "Particles removed by the reaper",
		}),
		live: f.NewGauge(prometheus.GaugeOpts{
			Name: "fizz_particles_live",
			Help: "Current number of live particles",
		}),
		burstsRejected: f.NewCounter(prometheus.CounterOpts{
			Name: "fizz_bursts_rejected_total",
			Help: "Burst requests rejected by the rate limiter",
		}),
		wsClients: f.NewGauge(prometheus.GaugeOpts{
			Name: "fizz_websocket_connections_active",
			Help: "Currently connected WebSocket clients",
		}),
		wsMessages: f.NewCounter(prometheus.CounterOpts{
			Name: "fizz_websocket_messages_total",
			Help: "WebSocket broadcasts sent",
		}),
	}
}

// observeTick records one tick.
func (m *metrics) observeTick(st fizz.TickStats, d time.Duration) {
	m.tickDuration.Observe(d.Seconds())
	m.spawned.Add(float64(st.Spawned))
	m.expired.Add(float64(st.Expired))
	m.reaped.Add(float64(st.Reaped))
	m.live.Set(float64(st.Live))
}
