package remote

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the HTTP API for s. It starts no goroutines and opens no
// listeners; call Server.Run separately to advance the simulation.
//
//	GET  /health            liveness
//	GET  /api/status        live count and totals (JSON)
//	GET  /api/config        simulated config (YAML)
//	POST /api/burst         spawn a burst at a world position, rate limited
//	PUT  /api/pointer       move the remote pointer and set a button
//	POST /api/reset         remove every particle
//	GET  /api/snapshot.png  current frame
//	GET  /ws                tick status feed
//	GET  /metrics           Prometheus metrics
func NewRouter(s *Server) *chi.Mux {
	r := chi.NewRouter()

	if !s.opts.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	h := &handlers{s: s}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", h.handleStatus)
		r.Get("/config", h.handleConfig)
		r.Post("/burst", h.handleBurst)
		r.Put("/pointer", h.handlePointer)
		r.Post("/reset", h.handleReset)
		r.Get("/snapshot.png", h.handleSnapshot)
	})

	r.Get("/ws", s.hub.HandleWebSocket)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	return r
}
