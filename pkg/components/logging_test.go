package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sysgraph/pkg/systems"
)

func TestLoggingLevelFromSettings(t *testing.T) {
	tests := []struct {
		level     string
		wantLevel log.Level
		wantDebug bool
	}{
		{"debug", log.DebugLevel, true},
		{"info", log.InfoLevel, false},
		{"error", log.ErrorLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			m := newManager(t)
			buf := boot(t, m, Source{LogLevel: tt.level})

			s, ok := systems.Find(m, Logging.Kind)
			if !ok {
				t.Fatal("Find(Logging) missed after boot")
			}
			if got := s.Logger.GetLevel(); got != tt.wantLevel {
				t.Errorf("GetLevel() = %v, want %v", got, tt.wantLevel)
			}
			if got := strings.Contains(buf.String(), "logging started"); got != tt.wantDebug {
				t.Errorf("debug line written = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestLoggingDependsOnSettings(t *testing.T) {
	m := newManager(t)
	boot(t, m, Source{})

	want := "settings has no dependencies\nlogging depends on [settings]\n"
	if got := dump(t, m); got != want {
		t.Errorf("DumpDependencies() = %q, want %q", got, want)
	}
}
