package components

import (
	"github.com/google/uuid"

	"github.com/matzehuels/sysgraph/pkg/config"
	"github.com/matzehuels/sysgraph/pkg/systems"
)

// Source selects where settings come from. Non-empty overrides replace the
// corresponding file values.
type Source struct {
	Path     string
	Addr     string
	LogLevel string
}

// SettingsSystem holds the validated host configuration.
type SettingsSystem struct {
	ID     uuid.UUID
	Path   string
	Config *config.Config
}

func (s *SettingsSystem) Name() string   { return "settings" }
func (s *SettingsSystem) Destroy() error { return nil }

// Settings loads the host configuration. Plain [systems.Load] uses the
// defaults; [systems.LoadWith] reads a [Source].
var Settings = systems.Configured[*SettingsSystem, Source]{
	Kind: systems.Kind[*SettingsSystem]{
		Key: "settings",
		Load: func(m *systems.Manager) (*SettingsSystem, error) {
			return loadSettings(Source{})
		},
	},
	LoadWith: func(_ *systems.Manager, src Source) (*SettingsSystem, error) {
		return loadSettings(src)
	},
}

func loadSettings(src Source) (*SettingsSystem, error) {
	cfg := config.Default()
	if src.Path != "" {
		loaded, err := config.Load(src.Path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if src.Addr != "" {
		cfg.HTTP.Addr = src.Addr
	}
	if src.LogLevel != "" {
		cfg.Log.Level = src.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &SettingsSystem{ID: uuid.New(), Path: src.Path, Config: cfg}, nil
}

// settingsConfig returns the live configuration, loading defaults if needed.
func settingsConfig(m *systems.Manager) (*config.Config, error) {
	s, err := systems.Load(m, Settings.Kind)
	if err != nil {
		return nil, err
	}
	return s.Config, nil
}
