package components

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/sysgraph/pkg/systems"
)

func TestLoadStackDefaults(t *testing.T) {
	m := newManager(t)
	var logs bytes.Buffer

	if err := LoadStack(m, StackOptions{LogOutput: &logs}); err != nil {
		t.Fatalf("LoadStack() error: %v", err)
	}

	want := []systems.Key{"settings", "logging", "metrics"}
	if got := m.Keys(); !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if strings.Contains(logs.String(), "WARN") {
		t.Errorf("disabled backends logged a warning:\n%s", logs.String())
	}
}

func TestLoadStackOptionalFailureIsWarning(t *testing.T) {
	m := newManager(t)
	var logs bytes.Buffer
	path := writeConfig(t, "[redis]\nenabled = true\naddr = \""+refusedAddr+"\"\ndial_timeout = \"200ms\"\n")

	if err := LoadStack(m, StackOptions{Source: Source{Path: path}, LogOutput: &logs}); err != nil {
		t.Fatalf("LoadStack() error: %v", err)
	}
	if !strings.Contains(logs.String(), "optional system unavailable") {
		t.Errorf("logs = %q, want a warning for redis", logs.String())
	}
	if m.Contains(Redis.Key) {
		t.Error("redis registered")
	}
}

func TestLoadStackServe(t *testing.T) {
	m := newManager(t)
	err := LoadStack(m, StackOptions{
		Source:    Source{Addr: "127.0.0.1:0"},
		LogOutput: &bytes.Buffer{},
		Serve:     true,
	})
	if err != nil {
		t.Fatalf("LoadStack() error: %v", err)
	}
	if _, ok := systems.Find(m, HTTP); !ok {
		t.Error("http not loaded")
	}
}

func TestLoadStackRequiredFailure(t *testing.T) {
	m := newManager(t)
	err := LoadStack(m, StackOptions{Source: Source{LogLevel: "nope"}, LogOutput: &bytes.Buffer{}})
	if err == nil {
		t.Fatal("LoadStack() = nil, want settings error")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}
