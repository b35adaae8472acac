package components

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/sysgraph/pkg/errors"
	"github.com/matzehuels/sysgraph/pkg/systems"
)

// InstanceHeader carries the serving HTTP system's instance ID.
const InstanceHeader = "X-Instance-ID"

// HTTPSystem serves health, dependency and metrics endpoints.
type HTTPSystem struct {
	ID uuid.UUID

	server   *http.Server
	listener net.Listener
	served   chan error
	timeout  time.Duration
	logger   *log.Logger
}

func (s *HTTPSystem) Name() string { return "http" }

// Addr returns the address the server is listening on.
func (s *HTTPSystem) Addr() string { return s.listener.Addr().String() }

// Handler returns the router.
func (s *HTTPSystem) Handler() http.Handler { return s.server.Handler }

// Serve starts accepting connections. Handlers read the Manager, so call it
// only once the Load that produced s has returned. Further calls are no-ops.
func (s *HTTPSystem) Serve() {
	if s.served != nil {
		return
	}
	s.served = make(chan error, 1)
	go func() { s.served <- s.server.Serve(s.listener) }()
	s.logger.Info("http server listening", "addr", s.Addr(), "id", s.ID)
}

// Destroy shuts the server down, waiting up to the configured shutdown
// timeout for in-flight requests. A server that never served only closes
// its listener.
func (s *HTTPSystem) Destroy() error {
	if s.served == nil {
		return s.listener.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	if err := <-s.served; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("http server stopped", "id", s.ID)
	return nil
}

// httpRequires are the systems HTTP loads itself.
var httpRequires = []systems.Key{"settings", "logging", "metrics"}

// HTTP listens on the configured address and serves:
//
//	GET /healthz   status of every live backend
//	GET /systems   the dependency dump
//	GET /metrics   Prometheus exposition
//
// Besides httpRequires, HTTP registers every system live at load time as a
// prerequisite, so teardown shuts the server down before anything its
// handlers can reach. Load it last and call [HTTPSystem.Serve] afterwards.
var HTTP = systems.Kind[*HTTPSystem]{
	Key:      "http",
	Requires: httpRequires,
	Load:     openHTTP,
}

func openHTTP(m *systems.Manager) (*HTTPSystem, error) {
	cfg, err := settingsConfig(m)
	if err != nil {
		return nil, err
	}
	l, err := logger(m)
	if err != nil {
		return nil, err
	}
	metrics, err := systems.Load(m, Metrics)
	if err != nil {
		return nil, err
	}

	ln, err := net.Listen("tcp", cfg.HTTP.Addr)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "listen on %s", cfg.HTTP.Addr)
	}

	s := &HTTPSystem{
		ID:       uuid.New(),
		listener: ln,
		timeout:  cfg.HTTP.ShutdownTimeout,
		logger:   l,
	}
	s.server = &http.Server{
		Handler:           newRouter(m, s, metrics),
		ReadHeaderTimeout: 10 * time.Second,
	}

	requires := slices.Clone(httpRequires)
	for _, k := range m.Keys() {
		if !slices.Contains(requires, k) {
			requires = append(requires, k)
		}
	}
	return systems.Emplace(m, systems.Kind[*HTTPSystem]{Key: "http", Requires: requires}, s), nil
}

func newRouter(m *systems.Manager, s *HTTPSystem, metrics *MetricsSystem) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set(InstanceHeader, s.ID.String())
			next.ServeHTTP(w, req)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		health := checkHealth(req.Context(), m)
		status := http.StatusOK
		for _, v := range health.Backends {
			if v != "ok" {
				status = http.StatusServiceUnavailable
				health.Status = "degraded"
			}
		}
		writeJSON(w, status, health)
	})

	r.Get("/systems", func(w http.ResponseWriter, req *http.Request) {
		var buf bytes.Buffer
		if err := m.DumpDependencies(&buf); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	return r
}

// Health is the body of GET /healthz.
type Health struct {
	Status   string            `json:"status"`
	Systems  []string          `json:"systems"`
	Backends map[string]string `json:"backends,omitempty"`
}

// pinger is implemented by backends that /healthz checks.
type pinger interface {
	systems.System
	Ping(ctx context.Context) error
}

func checkHealth(ctx context.Context, m *systems.Manager) Health {
	h := Health{Status: "ok", Backends: make(map[string]string)}
	for _, k := range m.Keys() {
		h.Systems = append(h.Systems, string(k))
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	m.ForEach(func(_ systems.Key, sys systems.System) {
		b, ok := sys.(pinger)
		if !ok {
			return
		}
		if err := b.Ping(ctx); err != nil {
			h.Backends[b.Name()] = err.Error()
			return
		}
		h.Backends[b.Name()] = "ok"
	})
	return h
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
