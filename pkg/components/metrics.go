package components

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/sysgraph/pkg/errors"
	"github.com/matzehuels/sysgraph/pkg/observability"
	"github.com/matzehuels/sysgraph/pkg/observability/prom"
	"github.com/matzehuels/sysgraph/pkg/systems"
)

// MetricsSystem owns a Prometheus registry and installs the lifecycle hooks
// that report into it.
type MetricsSystem struct {
	ID       uuid.UUID
	Registry *prometheus.Registry
	Hooks    *prom.Hooks
}

func (s *MetricsSystem) Name() string { return "metrics" }

// Destroy uninstalls the lifecycle hooks.
func (s *MetricsSystem) Destroy() error {
	if observability.Systems() == observability.SystemHooks(s.Hooks) {
		observability.Reset()
	}
	return nil
}

// Handler serves the registry in the Prometheus exposition format.
func (s *MetricsSystem) Handler() http.Handler {
	return promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})
}

// Metrics creates a registry with the Go runtime and process collectors plus
// the lifecycle metrics under the configured namespace.
var Metrics = systems.Kind[*MetricsSystem]{
	Key:      "metrics",
	Requires: []systems.Key{"settings", "logging"},
	Load: func(m *systems.Manager) (*MetricsSystem, error) {
		l, err := logger(m)
		if err != nil {
			return nil, err
		}
		cfg, err := settingsConfig(m)
		if err != nil {
			return nil, err
		}

		reg := prometheus.NewRegistry()
		for _, c := range []prometheus.Collector{
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		} {
			if err := reg.Register(c); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "register runtime collectors")
			}
		}
		hooks, err := prom.New(reg, cfg.Metrics.Namespace)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "register lifecycle metrics")
		}
		observability.SetSystemHooks(hooks)

		s := &MetricsSystem{ID: uuid.New(), Registry: reg, Hooks: hooks}
		l.Debug("metrics ready", "id", s.ID, "namespace", cfg.Metrics.Namespace)
		return s, nil
	},
}
