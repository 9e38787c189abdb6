package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

const (
	// MinPort is the minimum valid port number
	MinPort = 1
	// MaxPort is the maximum valid port number
	MaxPort = 65535

	DefaultPort       = 3000
	DefaultDatabase   = "mernJobPortal"
	DefaultCollection = "demoJobs"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	MongoDB MongoDBConfig `yaml:"mongodb"`
	Events  EventsConfig  `yaml:"events"`
	Logging LoggingConfig `yaml:"logging"`
	App     AppConfig     `yaml:"app"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" env:"PORT, overwrite"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// MongoDBConfig holds the document store target and credentials.
// URI takes precedence over Scheme/Host/User/Password when set.
type MongoDBConfig struct {
	URI            string        `yaml:"uri" env:"MONGODB_URI, overwrite"`
	Scheme         string        `yaml:"scheme"`
	Host           string        `yaml:"host" env:"DB_HOST, overwrite"`
	User           string        `yaml:"user" env:"DB_USER, overwrite"`
	Password       string        `yaml:"password" env:"DB_PASSWORD, overwrite"`
	AppName        string        `yaml:"app_name"`
	Database       string        `yaml:"database" env:"DB_NAME, overwrite"`
	Collection     string        `yaml:"collection" env:"DB_COLLECTION, overwrite"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// EventsConfig holds RabbitMQ settings for job lifecycle events
type EventsConfig struct {
	Enabled    bool             `yaml:"enabled" env:"EVENTS_ENABLED, overwrite"`
	Host       string           `yaml:"host" env:"RABBITMQ_HOST, overwrite"`
	Port       int              `yaml:"port"`
	User       string           `yaml:"user" env:"RABBITMQ_USER, overwrite"`
	Password   string           `yaml:"password" env:"RABBITMQ_PASSWORD, overwrite"`
	VHost      string           `yaml:"vhost"`
	Exchange   ExchangeConfig   `yaml:"exchange"`
	Connection ConnectionConfig `yaml:"connection"`
	Publish    PublishConfig    `yaml:"publish"`
}

// ExchangeConfig holds RabbitMQ exchange configuration
type ExchangeConfig struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Durable    bool   `yaml:"durable"`
	AutoDelete bool   `yaml:"auto_delete"`
}

// ConnectionConfig holds RabbitMQ connection settings
type ConnectionConfig struct {
	RetryAttempts int           `yaml:"retry_attempts"`
	RetryInterval time.Duration `yaml:"retry_interval"`
	Heartbeat     time.Duration `yaml:"heartbeat"`
}

// PublishConfig holds RabbitMQ publish retry settings
type PublishConfig struct {
	RetryAttempts     int           `yaml:"retry_attempts"`
	RetryInterval     time.Duration `yaml:"retry_interval"`
	BackoffMultiplier float64       `yaml:"backoff_multiplier"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level" env:"LOG_LEVEL, overwrite"`
	Format       string `yaml:"format" env:"LOG_FORMAT, overwrite"`
	Output       string `yaml:"output"`
	EnableCaller bool   `yaml:"enable_caller"`
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment" env:"APP_ENV, overwrite"`
}

// Load reads the configuration file, fills defaults and applies
// environment variable overrides.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()

	if err := envconfig.Process(context.Background(), &config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}

	if c.MongoDB.Scheme == "" {
		c.MongoDB.Scheme = "mongodb+srv"
	}
	if c.MongoDB.Database == "" {
		c.MongoDB.Database = DefaultDatabase
	}
	if c.MongoDB.Collection == "" {
		c.MongoDB.Collection = DefaultCollection
	}
	if c.MongoDB.ConnectTimeout == 0 {
		c.MongoDB.ConnectTimeout = 10 * time.Second
	}

	if c.Events.Port == 0 {
		c.Events.Port = 5672
	}
	if c.Events.Exchange.Type == "" {
		c.Events.Exchange.Type = "topic"
	}
	if c.Events.Connection.RetryAttempts == 0 {
		c.Events.Connection.RetryAttempts = 1
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port < MinPort || c.Server.Port > MaxPort {
		return fmt.Errorf("invalid server port: %d (must be between %d and %d)", c.Server.Port, MinPort, MaxPort)
	}

	if c.MongoDB.URI == "" && c.MongoDB.Host == "" {
		return fmt.Errorf("mongodb uri or host is required")
	}

	if c.MongoDB.Database == "" {
		return fmt.Errorf("mongodb database name is required")
	}

	if c.MongoDB.Collection == "" {
		return fmt.Errorf("mongodb collection name is required")
	}

	if !c.Events.Enabled {
		return nil
	}

	if c.Events.Host == "" {
		return fmt.Errorf("rabbitmq host is required when events are enabled")
	}

	if c.Events.Port < MinPort || c.Events.Port > MaxPort {
		return fmt.Errorf("invalid rabbitmq port: %d (must be between %d and %d)", c.Events.Port, MinPort, MaxPort)
	}

	if c.Events.Exchange.Name == "" {
		return fmt.Errorf("rabbitmq exchange name is required when events are enabled")
	}

	return nil
}
