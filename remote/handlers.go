package remote

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/fizz"
	"gopkg.in/yaml.v3"
)

type handlers struct {
	s *Server
}

func (h *handlers) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.s.Status())
}

func (h *handlers) handleConfig(w http.ResponseWriter, _ *http.Request) {
	data, err := yaml.Marshal(h.s.Config())
	if err != nil {
		writeError(w, "encode config", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(data)
}

func (h *handlers) handleBurst(w http.ResponseWriter, r *http.Request) {
	var req struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if !h.s.limiter.Allow() {
		h.s.metrics.burstsRejected.Inc()
		writeError(w, "Too many bursts", http.StatusTooManyRequests)
		return
	}
	n := h.s.Burst(mgl64.Vec3{req.X, req.Y, 0})
	writeJSON(w, map[string]int{"spawned": n})
}

func (h *handlers) handlePointer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Button string  `json:"button"`
		Held   bool    `json:"held"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	b := fizz.MouseButtonLeft
	if req.Button != "" {
		var err error
		if b, err = fizz.ParseMouseButton(req.Button); err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	h.s.SetPointer(req.X, req.Y, b, req.Held)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) handleReset(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]int{"removed": h.s.Reset()})
}

func (h *handlers) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := h.s.encodeSnapshot(&buf); err != nil {
		log.Printf("fizz: %v", err)
		writeError(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
