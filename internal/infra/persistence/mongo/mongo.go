// Package mongo contains the concrete implementation of the persistence
// layer on top of the MongoDB driver. One document per user; unique indexes
// are the source of truth for username/email uniqueness.
package mongo

import (
	"context"
	"log/slog"
	"time"

	"passport/config"
	"passport/internal/domain/lifecycle"
	"passport/internal/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const (
	defaultConnectTimeout = 10 * time.Second

	usernameIndexName = "uniq_username"
	emailIndexName    = "uniq_email"
)

// Params holds the dependencies for the database provider, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New connects to MongoDB, verifies the connection, ensures the unique
// indexes exist and registers a disconnect hook on shutdown.
func New(params Params) (*mongo.Database, error) {
	cfg := params.Config.Mongo
	if cfg == nil {
		return nil, errors.New("mongo configuration is missing")
	}

	timeout := cfg.ConnectTimeout
	if timeout == 0 {
		timeout = defaultConnectTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to mongo")
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "failed to ping mongo")
	}

	db := client.Database(cfg.Database)

	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}

	params.Logger.Info("Connected to mongo", slog.String("database", cfg.Database))

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			return errors.WithStack(client.Disconnect(shutdownCtx))
		},
	})

	return db, nil
}

// ensureIndexes creates the unique indexes backing the uniqueness invariants.
// The application-level existence checks are advisory only; these indexes
// decide races.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(usernameIndexName),
		},
		{
			Keys:    bson.D{{Key: "emailAddress", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(emailIndexName),
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to create user indexes")
	}

	return nil
}
