// Package mongodb implements the todo persistence port on MongoDB using the
// official Go driver. It owns the connection lifecycle, maps stored documents
// to domain values, and translates driver errors into domain sentinels.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jsamuelsen11/todo-mongo-service/internal/platform/config"
	"github.com/jsamuelsen11/todo-mongo-service/internal/ports"
)

// Compile-time interface check.
var _ ports.HealthChecker = (*Client)(nil)

// Client owns a pooled MongoDB connection. It is created once at startup and
// released with Disconnect at shutdown.
type Client struct {
	client   *mongo.Client
	database string
	logger   *slog.Logger
}

// Connect dials MongoDB and verifies the deployment answers a primary ping
// within cfg.ConnectTimeout. A nil monitor disables pool event reporting.
func Connect(ctx context.Context, cfg *config.MongoConfig, monitor *event.PoolMonitor, logger *slog.Logger) (*Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("todo-mongo-service").
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if monitor != nil {
		opts.SetPoolMonitor(monitor)
	}

	mc, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := mc.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = mc.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	logger.InfoContext(ctx, "connected to mongodb",
		slog.String("mongo_uri", cfg.URI),
		slog.String("database", cfg.Database),
	)

	return &Client{client: mc, database: cfg.Database, logger: logger}, nil
}

// Collection returns a handle to the named collection in the configured database.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.client.Database(c.database).Collection(name)
}

// Disconnect closes every pooled connection. Safe to call once at shutdown.
func (c *Client) Disconnect(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnecting from mongodb: %w", err)
	}
	c.logger.InfoContext(ctx, "disconnected from mongodb")
	return nil
}

// Shutdown disconnects the client. It lets the DI container release the pool
// when the graph is torn down.
func (c *Client) Shutdown(ctx context.Context) error {
	return c.Disconnect(ctx)
}

// Name returns the health checker identifier.
func (c *Client) Name() string {
	return "mongodb"
}

// HealthCheck pings the primary. Respects ctx cancellation and deadline.
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb ping: %w", err)
	}
	return nil
}
