// Package config loads the host configuration for sysgraph.
//
// A configuration file is TOML or YAML, chosen by extension. Values missing
// from the file keep their defaults, unknown keys are rejected, and the result
// is validated before it is returned.
//
//	[log]
//	level = "debug"
//
//	[http]
//	addr = ":9090"
//
//	[redis]
//	enabled = true
//	addr = "localhost:6379"
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/sysgraph/pkg/errors"
)

// Config is the host configuration.
type Config struct {
	Log     LogConfig     `toml:"log" yaml:"log"`
	HTTP    HTTPConfig    `toml:"http" yaml:"http"`
	Redis   RedisConfig   `toml:"redis" yaml:"redis"`
	Mongo   MongoConfig   `toml:"mongo" yaml:"mongo"`
	Metrics MetricsConfig `toml:"metrics" yaml:"metrics"`
}

// LogConfig configures the logging system.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// HTTPConfig configures the HTTP system.
type HTTPConfig struct {
	Addr            string        `toml:"addr" yaml:"addr"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// RedisConfig configures the optional Redis system.
type RedisConfig struct {
	Enabled     bool          `toml:"enabled" yaml:"enabled"`
	Addr        string        `toml:"addr" yaml:"addr"`
	Password    string        `toml:"password" yaml:"password"`
	DB          int           `toml:"db" yaml:"db"`
	DialTimeout time.Duration `toml:"dial_timeout" yaml:"dial_timeout"`
}

// MongoConfig configures the optional MongoDB system.
type MongoConfig struct {
	Enabled        bool          `toml:"enabled" yaml:"enabled"`
	URI            string        `toml:"uri" yaml:"uri"`
	Database       string        `toml:"database" yaml:"database"`
	ConnectTimeout time.Duration `toml:"connect_timeout" yaml:"connect_timeout"`
}

// MetricsConfig configures the metrics system.
type MetricsConfig struct {
	Namespace string `toml:"namespace" yaml:"namespace"`
}

// Default returns the configuration used when no file is given.
// Redis and MongoDB are disabled.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			DialTimeout: 2 * time.Second,
		},
		Mongo: MongoConfig{
			URI:            "mongodb://localhost:27017",
			Database:       "sysgraph",
			ConnectTimeout: 5 * time.Second,
		},
		Metrics: MetricsConfig{Namespace: "sysgraph"},
	}
}

// Load reads the file at path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	if err := errors.ValidateConfigPath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = decodeTOML(data, cfg)
	default:
		err = decodeYAML(data, cfg)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}

var namespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log.level")
	}
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "http.addr cannot be empty")
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "http.shutdown_timeout must be positive")
	}
	if !namespacePattern.MatchString(c.Metrics.Namespace) {
		return errors.New(errors.ErrCodeInvalidConfig, "metrics.namespace %q is not a valid metric name prefix", c.Metrics.Namespace)
	}
	if c.Redis.Enabled {
		if strings.TrimSpace(c.Redis.Addr) == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "redis.addr cannot be empty when redis is enabled")
		}
		if c.Redis.DB < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "redis.db cannot be negative")
		}
		if c.Redis.DialTimeout <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "redis.dial_timeout must be positive")
		}
	}
	if c.Mongo.Enabled {
		if !strings.HasPrefix(c.Mongo.URI, "mongodb://") && !strings.HasPrefix(c.Mongo.URI, "mongodb+srv://") {
			return errors.New(errors.ErrCodeInvalidConfig, "mongo.uri must start with mongodb:// or mongodb+srv://")
		}
		if strings.TrimSpace(c.Mongo.Database) == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "mongo.database cannot be empty when mongo is enabled")
		}
		if c.Mongo.ConnectTimeout <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "mongo.connect_timeout must be positive")
		}
	}
	return nil
}
