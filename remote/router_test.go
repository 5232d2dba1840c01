package remote

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phanxgames/fizz"
	"gopkg.in/yaml.v3"
)

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	router := NewRouter(newTestServer(t, fizz.AmbientConfig(), testOptions()))
	rec := do(t, router, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestServer(t, fizz.AmbientConfig(), testOptions())
	s.Step(0.1)
	router := NewRouter(s)

	rec := do(t, router, http.MethodGet, "/api/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d", rec.Code)
	}
	var st Status
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	if st.Live != 10 || st.Totals.Ticks != 1 {
		t.Errorf("status = %+v", st)
	}
}

func TestConfigEndpoint(t *testing.T) {
	router := NewRouter(newTestServer(t, fizz.AmbientConfig(), testOptions()))
	rec := do(t, router, http.MethodGet, "/api/config", "")
	if ct := rec.Header().Get("Content-Type"); ct != "application/yaml" {
		t.Errorf("Content-Type = %q", ct)
	}
	got, err := fizz.ParseConfig(rec.Body.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	want := fizz.AmbientConfig()
	if got.Count != want.Count || got.Trigger != want.Trigger || got.Placement != want.Placement {
		t.Errorf("config = %+v, want %+v", got, want)
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	if raw["trigger"] != "timer" {
		t.Errorf("trigger = %v, want timer", raw["trigger"])
	}
}

func TestBurstEndpoint(t *testing.T) {
	s := newTestServer(t, fizz.AmbientConfig(), testOptions())
	router := NewRouter(s)

	rec := do(t, router, http.MethodPost, "/api/burst", `{"x": 10, "y": -4}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("burst code = %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["spawned"] != 10 {
		t.Errorf("spawned = %d, want 10", resp["spawned"])
	}
	if s.Status().Live != 10 {
		t.Errorf("Live = %d, want 10", s.Status().Live)
	}

	rec = do(t, router, http.MethodPost, "/api/burst", `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad body code = %d, want 400", rec.Code)
	}
}

func TestBurstRateLimited(t *testing.T) {
	opts := testOptions()
	opts.BurstRate = 0.001
	opts.BurstLimit = 2
	router := NewRouter(newTestServer(t, fizz.AmbientConfig(), opts))

	for i := 0; i < 2; i++ {
		if rec := do(t, router, http.MethodPost, "/api/burst", `{}`); rec.Code != http.StatusOK {
			t.Fatalf("burst %d code = %d", i, rec.Code)
		}
	}
	rec := do(t, router, http.MethodPost, "/api/burst", `{}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("third burst code = %d, want 429", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/metrics", "")
	if !strings.Contains(rec.Body.String(), "fizz_bursts_rejected_total 1") {
		t.Error("rejected burst not counted in metrics")
	}
}

func TestPointerEndpoint(t *testing.T) {
	s := newTestServer(t, fizz.InteractiveConfig(), testOptions())
	router := NewRouter(s)

	rec := do(t, router, http.MethodPut, "/api/pointer", `{"x": 100, "y": 50, "held": true}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("pointer code = %d", rec.Code)
	}
	s.Step(0.1)
	if s.Status().Live != 1 {
		t.Errorf("Live = %d, want 1", s.Status().Live)
	}

	rec = do(t, router, http.MethodPut, "/api/pointer", `{"button": "thumb"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad button code = %d, want 400", rec.Code)
	}
}

func TestResetEndpoint(t *testing.T) {
	s := newTestServer(t, fizz.AmbientConfig(), testOptions())
	s.Step(0.1)
	rec := do(t, NewRouter(s), http.MethodPost, "/api/reset", "")
	var resp map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["removed"] != 10 {
		t.Errorf("removed = %d, want 10", resp["removed"])
	}
}

func TestSnapshotEndpoint(t *testing.T) {
	s := newTestServer(t, fizz.AmbientConfig(), testOptions())
	s.Step(0.1)
	rec := do(t, NewRouter(s), http.MethodGet, "/api/snapshot.png", "")
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("snapshot size = %v, want 200x100", b)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, fizz.AmbientConfig(), testOptions())
	s.Step(0.1)
	s.Step(0.1)
	body := do(t, NewRouter(s), http.MethodGet, "/metrics", "").Body.String()
	for _, want := range []string{
		"fizz_particles_live 20",
		"fizz_particles_spawned_total 20",
		"fizz_tick_duration_seconds_count 2",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	router := NewRouter(newTestServer(t, fizz.AmbientConfig(), testOptions()))
	req := httptest.NewRequest(http.MethodOptions, "/api/status", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin = %q", got)
	}
}
