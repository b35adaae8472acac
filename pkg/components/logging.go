package components

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/sysgraph/pkg/systems"
)

// LoggingSystem owns the host logger.
type LoggingSystem struct {
	ID     uuid.UUID
	Logger *log.Logger
}

func (s *LoggingSystem) Name() string { return "logging" }

func (s *LoggingSystem) Destroy() error {
	s.Logger.Debug("logging stopped", "id", s.ID)
	return nil
}

// Logging builds a logger at the configured level. Plain [systems.Load]
// writes to stderr; [systems.LoadWith] writes to the given writer.
var Logging = systems.Configured[*LoggingSystem, io.Writer]{
	Kind: systems.Kind[*LoggingSystem]{
		Key:      "logging",
		Requires: []systems.Key{"settings"},
		Load: func(m *systems.Manager) (*LoggingSystem, error) {
			return loadLogging(m, os.Stderr)
		},
	},
	LoadWith: loadLogging,
}

func loadLogging(m *systems.Manager, w io.Writer) (*LoggingSystem, error) {
	cfg, err := settingsConfig(m)
	if err != nil {
		return nil, err
	}
	// Validated by config.
	level, _ := log.ParseLevel(cfg.Log.Level)

	s := &LoggingSystem{
		ID: uuid.New(),
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
	s.Logger.Debug("logging started", "id", s.ID, "level", level)
	return s, nil
}

// logger returns the live host logger, loading it if needed.
func logger(m *systems.Manager) (*log.Logger, error) {
	s, err := systems.Load(m, Logging.Kind)
	if err != nil {
		return nil, err
	}
	return s.Logger, nil
}
