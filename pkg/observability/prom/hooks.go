// Package prom implements the observability hooks with Prometheus metrics.
package prom

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/sysgraph/pkg/observability"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// Hooks implements [observability.SystemHooks] using Prometheus.
type Hooks struct {
	loads        *prometheus.CounterVec
	loadDuration *prometheus.HistogramVec
	emplaces     *prometheus.CounterVec
	destroys     *prometheus.CounterVec
	live         prometheus.Gauge
}

var _ observability.SystemHooks = (*Hooks)(nil)

// New creates the collectors and registers them with reg.
// It fails if any metric is already registered, for example when two
// instances share one namespace on the same registry.
func New(reg prometheus.Registerer, namespace string) (*Hooks, error) {
	h := &Hooks{
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "system_loads_total",
				Help:      "Total number of system construction attempts",
			},
			[]string{"key", "status"},
		),
		loadDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "system_load_duration_seconds",
				Help:      "System construction duration in seconds",
				Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"key"},
		),
		emplaces: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "system_registrations_total",
				Help:      "Total number of system registrations",
			},
			[]string{"key", "replaced"},
		),
		destroys: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "system_destroys_total",
				Help:      "Total number of system teardown calls",
			},
			[]string{"key", "status"},
		),
		live: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "systems_live",
				Help:      "Number of currently registered systems",
			},
		),
	}

	for _, c := range []prometheus.Collector{h.loads, h.loadDuration, h.emplaces, h.destroys, h.live} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// OnLoad counts the attempt and observes its duration.
func (h *Hooks) OnLoad(key string, d time.Duration, err error) {
	h.loads.WithLabelValues(key, status(err)).Inc()
	h.loadDuration.WithLabelValues(key).Observe(d.Seconds())
}

// OnEmplace counts the registration. A replacement's old instance is
// destroyed first, so live stays balanced.
func (h *Hooks) OnEmplace(key string, replaced bool) {
	h.emplaces.WithLabelValues(key, strconv.FormatBool(replaced)).Inc()
	h.live.Inc()
}

// OnDestroy counts the teardown call.
func (h *Hooks) OnDestroy(key string, _ time.Duration, err error) {
	h.destroys.WithLabelValues(key, status(err)).Inc()
	h.live.Dec()
}

func status(err error) string {
	if err != nil {
		return statusError
	}
	return statusOK
}
