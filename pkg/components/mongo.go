package components

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/sysgraph/pkg/errors"
	"github.com/matzehuels/sysgraph/pkg/systems"
)

// MongoSystem owns a connected MongoDB client and its database handle.
type MongoSystem struct {
	ID       uuid.UUID
	Client   *mongo.Client
	Database *mongo.Database

	timeout time.Duration
}

func (s *MongoSystem) Name() string { return "mongo" }

// Destroy disconnects the client.
func (s *MongoSystem) Destroy() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.Client.Disconnect(ctx)
}

// Ping checks that the primary still answers.
func (s *MongoSystem) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, readpref.Primary())
}

// Mongo connects to the configured deployment and fails with UNAVAILABLE
// when MongoDB is disabled or the primary cannot be reached within the
// connect timeout.
var Mongo = systems.Kind[*MongoSystem]{
	Key:      "mongo",
	Requires: []systems.Key{"settings", "logging"},
	Load: func(m *systems.Manager) (*MongoSystem, error) {
		cfg, err := settingsConfig(m)
		if err != nil {
			return nil, err
		}
		l, err := logger(m)
		if err != nil {
			return nil, err
		}
		mc := cfg.Mongo
		if !mc.Enabled {
			return nil, errors.New(errors.ErrCodeUnavailable, "mongo is disabled")
		}

		ctx, cancel := context.WithTimeout(context.Background(), mc.ConnectTimeout)
		defer cancel()

		opts := options.Client().
			ApplyURI(mc.URI).
			SetConnectTimeout(mc.ConnectTimeout).
			SetServerSelectionTimeout(mc.ConnectTimeout)
		client, err := mongo.Connect(ctx, opts)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "connect to mongo")
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "ping mongo")
		}

		s := &MongoSystem{
			ID:       uuid.New(),
			Client:   client,
			Database: client.Database(mc.Database),
			timeout:  mc.ConnectTimeout,
		}
		l.Info("connected to mongo", "database", mc.Database, "id", s.ID)
		return s, nil
	},
}
