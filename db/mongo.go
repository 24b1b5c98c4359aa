package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"employee-service/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultConnectTimeout = 10 * time.Second

var (
	connectClient = mongo.Connect
	pingClient    = func(ctx context.Context, client *mongo.Client) error {
		return client.Ping(ctx, readpref.Primary())
	}
)

// Connect opens a client for cfg.URI and verifies it with a ping. The caller
// owns the returned client and must Disconnect it on shutdown.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo connection string is empty")
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := connectClient(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := pingClient(ctx, client); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	log.Printf("Successfully connected to MongoDB database %s", cfg.Database)
	return client, nil
}
