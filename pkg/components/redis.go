package components

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/sysgraph/pkg/errors"
	"github.com/matzehuels/sysgraph/pkg/systems"
)

// RedisSystem owns a connected Redis client.
type RedisSystem struct {
	ID     uuid.UUID
	Client *redis.Client
}

func (s *RedisSystem) Name() string { return "redis" }

// Destroy closes the client and its connection pool.
func (s *RedisSystem) Destroy() error { return s.Client.Close() }

// Ping checks that the server still answers.
func (s *RedisSystem) Ping(ctx context.Context) error { return s.Client.Ping(ctx).Err() }

// Redis connects to the configured server and fails with UNAVAILABLE when
// Redis is disabled or does not answer PING within the dial timeout.
var Redis = systems.Kind[*RedisSystem]{
	Key:      "redis",
	Requires: []systems.Key{"settings", "logging"},
	Load: func(m *systems.Manager) (*RedisSystem, error) {
		cfg, err := settingsConfig(m)
		if err != nil {
			return nil, err
		}
		l, err := logger(m)
		if err != nil {
			return nil, err
		}
		rc := cfg.Redis
		if !rc.Enabled {
			return nil, errors.New(errors.ErrCodeUnavailable, "redis is disabled")
		}

		client := redis.NewClient(&redis.Options{
			Addr:        rc.Addr,
			Password:    rc.Password,
			DB:          rc.DB,
			DialTimeout: rc.DialTimeout,
			MaxRetries:  1,
		})

		ctx, cancel := context.WithTimeout(context.Background(), rc.DialTimeout)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "connect to redis at %s", rc.Addr)
		}

		s := &RedisSystem{ID: uuid.New(), Client: client}
		l.Info("connected to redis", "addr", rc.Addr, "db", rc.DB, "id", s.ID)
		return s, nil
	},
}
