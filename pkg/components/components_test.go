package components

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sysgraph/pkg/observability"
	"github.com/matzehuels/sysgraph/pkg/systems"
)

func newManager(t *testing.T) *systems.Manager {
	t.Helper()
	m := systems.New(systems.WithLogger(log.New(io.Discard)))
	t.Cleanup(func() {
		_ = m.Close()
		observability.Reset()
	})
	return m
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sysgraph.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// boot loads settings from src and logging into a buffer.
func boot(t *testing.T, m *systems.Manager, src Source) *bytes.Buffer {
	t.Helper()
	if _, err := systems.LoadWith(m, Settings, src); err != nil {
		t.Fatalf("LoadWith(Settings) error: %v", err)
	}
	var buf bytes.Buffer
	if _, err := systems.LoadWith(m, Logging, io.Writer(&buf)); err != nil {
		t.Fatalf("LoadWith(Logging) error: %v", err)
	}
	return &buf
}

func dump(t *testing.T, m *systems.Manager) string {
	t.Helper()
	var buf bytes.Buffer
	if err := m.DumpDependencies(&buf); err != nil {
		t.Fatalf("DumpDependencies() error: %v", err)
	}
	return buf.String()
}
