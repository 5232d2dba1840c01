// Fizzd runs a particle system headless and serves it over HTTP.
//
// Usage:
//
//	go run ./cmd/fizzd [flags]
//
// Endpoints:
//
//	GET  /health               Liveness check
//	GET  /api/status           Live count and totals
//	GET  /api/config           Active config as YAML
//	POST /api/burst            Spawn a burst at world {"x","y"}
//	PUT  /api/pointer          Set the remote pointer {"x","y","button","held"}
//	POST /api/reset            Remove every particle
//	GET  /api/snapshot.png     Current frame
//	GET  /ws                   Tick stats feed
//	GET  /metrics              Prometheus metrics
package main

import (
	"context"
	"flag"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phanxgames/fizz"
	"github.com/phanxgames/fizz/remote"
)

var (
	addrFlag   = flag.String("addr", ":8080", "HTTP listen address")
	configFlag = flag.String("config", "", "YAML config file")
	presetFlag = flag.String("preset", "ambient", "Stock preset used when -config is empty")
	seedFlag   = flag.Uint64("seed", 0, "RNG seed (0 = random)")
	tpsFlag    = flag.Int("tps", 60, "Simulation ticks per second")
	widthFlag  = flag.Int("width", 800, "Snapshot width in pixels")
	heightFlag = flag.Int("height", 600, "Snapshot height in pixels")
	zoomFlag   = flag.Float64("zoom", 1, "Camera zoom")
	debugFlag  = flag.Bool("debug", false, "Print per-tick stats to stderr")
	quietFlag  = flag.Bool("quiet", false, "Disable request logging")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	var rng *rand.Rand
	if *seedFlag != 0 {
		rng = fizz.NewSeededRand(*seedFlag)
	}

	opts := remote.DefaultOptions()
	opts.Width, opts.Height = *widthFlag, *heightFlag
	opts.Zoom = *zoomFlag
	opts.TPS = *tpsFlag
	opts.DisableLogging = *quietFlag

	srv, err := remote.NewServer(cfg, rng, opts)
	if err != nil {
		log.Fatal(err)
	}
	srv.SetDebugMode(*debugFlag)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := srv.Run(ctx); err != nil {
			log.Printf("fizzd: simulation stopped: %v", err)
		}
	}()

	httpSrv := &http.Server{
		Addr:              *addrFlag,
		Handler:           remote.NewRouter(srv),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("fizzd: listening on %s (%dx%d, %d TPS)", *addrFlag, opts.Width, opts.Height, opts.TPS)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("fizzd: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("fizzd: shutting down")
	cancel()
	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("fizzd: shutdown: %v", err)
	}
}

func loadConfig() (fizz.Config, error) {
	if *configFlag != "" {
		return fizz.LoadConfig(*configFlag)
	}
	return fizz.PresetConfig(*presetFlag)
}
