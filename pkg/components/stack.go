package components

import (
	"io"

	"github.com/matzehuels/sysgraph/pkg/errors"
	"github.com/matzehuels/sysgraph/pkg/systems"
)

// StackOptions controls [LoadStack].
type StackOptions struct {
	// Source selects the configuration.
	Source Source
	// LogOutput receives log output. Nil means stderr.
	LogOutput io.Writer
	// Serve also loads the HTTP system.
	Serve bool
}

// LoadStack loads settings, logging and metrics, then the optional backends,
// then HTTP when opts.Serve is set. HTTP is started once it is registered.
//
// Settings, logging, metrics and HTTP are required: their failure is
// returned. An optional backend that fails is logged as a warning and left
// out; UNAVAILABLE failures from a disabled backend are logged at debug.
func LoadStack(m *systems.Manager, opts StackOptions) error {
	if _, err := systems.LoadWith(m, Settings, opts.Source); err != nil {
		return err
	}
	if opts.LogOutput != nil {
		if _, err := systems.LoadWith(m, Logging, opts.LogOutput); err != nil {
			return err
		}
	}
	l, err := logger(m)
	if err != nil {
		return err
	}
	if _, err := systems.Load(m, Metrics); err != nil {
		return err
	}

	cfg, err := settingsConfig(m)
	if err != nil {
		return err
	}
	optional := []struct {
		key     systems.Key
		enabled bool
		load    func() error
	}{
		{Redis.Key, cfg.Redis.Enabled, func() error { _, err := systems.Load(m, Redis); return err }},
		{Mongo.Key, cfg.Mongo.Enabled, func() error { _, err := systems.Load(m, Mongo); return err }},
	}
	for _, o := range optional {
		err := o.load()
		switch {
		case err == nil:
		case !o.enabled && errors.HasCode(err, errors.ErrCodeUnavailable):
			l.Debug("optional system disabled", "key", o.key)
		default:
			l.Warn("optional system unavailable", "key", o.key, "err", err)
		}
	}

	if opts.Serve {
		srv, err := systems.Load(m, HTTP)
		if err != nil {
			return err
		}
		srv.Serve()
	}
	return nil
}
