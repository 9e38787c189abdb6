package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Config holds MongoDB connection configuration
type Config struct {
	URI            string // full connection string, wins over the fields below
	Scheme         string // mongodb or mongodb+srv
	Host           string
	User           string
	Password       string
	AppName        string
	Database       string
	ConnectTimeout time.Duration
}

// Client represents a MongoDB client bound to one database
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	config *Config
	logger *slog.Logger
}

// BuildURI returns the connection string for config. Credentials are
// escaped so passwords containing reserved characters survive.
func BuildURI(config *Config) string {
	if config.URI != "" {
		return config.URI
	}

	scheme := config.Scheme
	if scheme == "" {
		scheme = "mongodb+srv"
	}

	query := url.Values{}
	query.Set("retryWrites", "true")
	query.Set("w", "majority")
	if config.AppName != "" {
		query.Set("appName", config.AppName)
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     config.Host,
		Path:     "/",
		RawQuery: query.Encode(),
	}
	if config.User != "" {
		u.User = url.UserPassword(config.User, config.Password)
	}

	return u.String()
}

// NewClient connects to MongoDB using the Stable API v1 and verifies the
// deployment with a ping against the admin database.
func NewClient(ctx context.Context, config *Config, logger *slog.Logger) (*Client, error) {
	timeout := config.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	logger.Info("Connecting to MongoDB",
		slog.String("host", config.Host),
		slog.String("database", config.Database),
	)

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	opts := options.Client().
		ApplyURI(BuildURI(config)).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(timeout)

	if config.AppName != "" {
		opts.SetAppName(config.AppName)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Error("Failed to connect to MongoDB",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Database("admin").RunCommand(pingCtx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		logger.Error("Failed to ping MongoDB",
			slog.Any("error", err),
		)
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info("Pinged your deployment. Successfully connected to MongoDB",
		slog.String("database", config.Database),
	)

	return &Client{
		client: client,
		db:     client.Database(config.Database),
		config: config,
		logger: logger,
	}, nil
}

// Collection returns a handle to the named collection in the configured database
func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// Ping checks the deployment is reachable
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := c.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongodb health check failed: %w", err)
	}
	return nil
}

// Close disconnects the client, waiting for in-use connections up to ctx's deadline
func (c *Client) Close(ctx context.Context) error {
	c.logger.Info("Closing MongoDB connection")

	if err := c.client.Disconnect(ctx); err != nil {
		c.logger.Error("Failed to close MongoDB connection",
			slog.Any("error", err),
		)
		return err
	}

	c.logger.Info("MongoDB connection closed successfully")
	return nil
}
