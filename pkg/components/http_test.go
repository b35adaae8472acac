package components

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/sysgraph/pkg/errors"
	"github.com/matzehuels/sysgraph/pkg/systems"
)

func loadHTTP(t *testing.T, m *systems.Manager) *HTTPSystem {
	t.Helper()
	boot(t, m, Source{Addr: "127.0.0.1:0"})
	s, err := systems.Load(m, HTTP)
	if err != nil {
		t.Fatalf("Load(HTTP) error: %v", err)
	}
	return s
}

func TestHTTPRoutes(t *testing.T) {
	m := newManager(t)
	s := loadHTTP(t, m)

	tests := []struct {
		path     string
		wantCode int
		wantBody string
	}{
		{"/healthz", http.StatusOK, `"status":"ok"`},
		{"/systems", http.StatusOK, "http depends on [settings, logging, metrics]\n"},
		{"/metrics", http.StatusOK, "sysgraph_system_loads_total"},
		{"/missing", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.wantBody)
			}
			if got := rec.Header().Get(InstanceHeader); got != s.ID.String() {
				t.Errorf("%s = %q, want %q", InstanceHeader, got, s.ID)
			}
		})
	}
}

func TestHTTPHealthListsSystems(t *testing.T) {
	m := newManager(t)
	s := loadHTTP(t, m)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var h Health
	if err := json.NewDecoder(rec.Body).Decode(&h); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"settings", "logging", "metrics", "http"}
	if strings.Join(h.Systems, ",") != strings.Join(want, ",") {
		t.Errorf("Systems = %v, want %v", h.Systems, want)
	}
	if len(h.Backends) != 0 {
		t.Errorf("Backends = %v, want none", h.Backends)
	}
}

func TestHTTPServesUntilDestroyed(t *testing.T) {
	m := newManager(t)
	s := loadHTTP(t, m)
	s.Serve()
	url := "http://" + s.Addr() + "/healthz"

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	if err := m.TeardownAll(); err != nil {
		t.Fatalf("TeardownAll() error: %v", err)
	}
	if _, err := http.Get(url); err == nil {
		t.Error("server still answering after teardown")
	}
}

func TestHTTPListenFailure(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer busy.Close()

	m := newManager(t)
	boot(t, m, Source{Addr: busy.Addr().String()})

	_, err = systems.Load(m, HTTP)
	if !errors.HasCode(err, errors.ErrCodeUnavailable) {
		t.Fatalf("Load(HTTP) error = %v, want UNAVAILABLE", err)
	}
	if m.Contains(HTTP.Key) {
		t.Error("http registered after listen failure")
	}
	// metrics was loaded on the way and stays
	if !m.Contains(Metrics.Key) {
		t.Error("metrics missing after http failure")
	}
}

// stubBackend is a leaf backend that counts pings arriving after Destroy.
type stubBackend struct {
	destroyed atomic.Bool
	pings     atomic.Int64
	late      atomic.Int64
}

func (b *stubBackend) Name() string { return "backend" }

func (b *stubBackend) Destroy() error {
	b.destroyed.Store(true)
	return nil
}

func (b *stubBackend) Ping(context.Context) error {
	b.pings.Add(1)
	if b.destroyed.Load() {
		b.late.Add(1)
	}
	return nil
}

func TestHTTPStopsBeforeBackends(t *testing.T) {
	m := newManager(t)
	boot(t, m, Source{Addr: "127.0.0.1:0"})

	b := &stubBackend{}
	backend := systems.Kind[*stubBackend]{
		Key:      "backend",
		Requires: []systems.Key{"settings", "logging"},
		Load:     func(*systems.Manager) (*stubBackend, error) { return b, nil },
	}
	if _, err := systems.Load(m, backend); err != nil {
		t.Fatalf("Load(backend) error: %v", err)
	}
	s, err := systems.Load(m, HTTP)
	if err != nil {
		t.Fatalf("Load(HTTP) error: %v", err)
	}

	if got := dump(t, m); !strings.Contains(got, "http depends on [settings, logging, metrics, backend]\n") {
		t.Errorf("dump = %q, want http to depend on the backend", got)
	}
	var first systems.Key
	m.ReverseForEach(func(k systems.Key, _ systems.System) {
		if first == "" {
			first = k
		}
	})
	if first != HTTP.Key {
		t.Fatalf("teardown starts with %s, want http", first)
	}

	s.Serve()
	url := "http://" + s.Addr() + "/healthz"
	client := &http.Client{Timeout: time.Second}
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
			}
			resp, err := client.Get(url)
			if err != nil {
				continue
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}
	}()

	deadline := time.Now().Add(5 * time.Second)
	for b.pings.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if b.pings.Load() == 0 {
		t.Fatal("/healthz never pinged the backend")
	}

	if err := m.TeardownAll(); err != nil {
		t.Fatalf("TeardownAll() error: %v", err)
	}
	close(stop)
	<-done

	if n := b.late.Load(); n != 0 {
		t.Errorf("backend pinged %d times after it was destroyed", n)
	}
}

func TestHTTPNeverServedCloses(t *testing.T) {
	m := newManager(t)
	s := loadHTTP(t, m)
	addr := s.Addr()

	if err := m.TeardownAll(); err != nil {
		t.Fatalf("TeardownAll() error: %v", err)
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		t.Fatalf("address still held after teardown: %v", err)
	}
	ln.Close()
}
