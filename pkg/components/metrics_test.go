package components

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/sysgraph/pkg/observability"
	"github.com/matzehuels/sysgraph/pkg/systems"
)

func TestMetricsInstallsHooks(t *testing.T) {
	m := newManager(t)
	boot(t, m, Source{})

	s, err := systems.Load(m, Metrics)
	if err != nil {
		t.Fatalf("Load(Metrics) error: %v", err)
	}
	if observability.Systems() != observability.SystemHooks(s.Hooks) {
		t.Fatal("metrics did not install its lifecycle hooks")
	}

	// A disabled backend fails and is counted.
	_, _ = systems.Load(m, Redis)

	n, err := testutil.GatherAndCount(s.Registry, "sysgraph_system_loads_total")
	if err != nil {
		t.Fatalf("GatherAndCount() error: %v", err)
	}
	// metrics ok, redis error
	if n != 2 {
		t.Errorf("load series = %d, want 2", n)
	}

	if err := m.TeardownAll(); err != nil {
		t.Fatalf("TeardownAll() error: %v", err)
	}
	if _, ok := observability.Systems().(observability.NoopSystemHooks); !ok {
		t.Error("hooks still installed after metrics was destroyed")
	}
}

func TestMetricsNamespaceFromSettings(t *testing.T) {
	m := newManager(t)
	boot(t, m, Source{Path: writeConfig(t, "[metrics]\nnamespace = \"custom\"\n")})

	s, err := systems.Load(m, Metrics)
	if err != nil {
		t.Fatalf("Load(Metrics) error: %v", err)
	}
	n, err := testutil.GatherAndCount(s.Registry, "custom_system_loads_total")
	if err != nil {
		t.Fatalf("GatherAndCount() error: %v", err)
	}
	if n != 1 {
		t.Errorf("load series = %d, want 1", n)
	}
}
