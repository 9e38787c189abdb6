package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cuongbtq/job-registry/internal/api/events"
	"github.com/cuongbtq/job-registry/internal/api/handler"
	"github.com/cuongbtq/job-registry/internal/api/router"
	"github.com/cuongbtq/job-registry/internal/api/storage"
	"github.com/cuongbtq/job-registry/internal/config"
	"github.com/cuongbtq/job-registry/shared/logger"
	"github.com/cuongbtq/job-registry/shared/mongodb"
	"github.com/cuongbtq/job-registry/shared/rabbitmq"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or flags")
	}

	defaultConfigPath := os.Getenv("API_SERVICE_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/api-service/config.yaml"
	}
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	appLogger, err := initLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	appLogger.Info("Starting job registry service",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := initMongoDB(ctx, &cfg.MongoDB, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize MongoDB: %w", err)
	}

	var rabbitClient *rabbitmq.Client
	if cfg.Events.Enabled {
		rabbitClient, err = initRabbitMQ(ctx, &cfg.Events, appLogger.Logger)
		if err != nil {
			closeMongoDB(mongoClient, appLogger.Logger)
			return fmt.Errorf("failed to initialize RabbitMQ: %w", err)
		}
		appLogger.Info("Job events enabled", slog.String("exchange", cfg.Events.Exchange.Name))
	}

	cleanup := func() {
		if rabbitClient != nil {
			rabbitClient.Close()
		}
		closeMongoDB(mongoClient, appLogger.Logger)
	}
	defer cleanup()

	r := initRouter(cfg, appLogger.Logger, mongoClient, rabbitClient)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	appLogger.Info("Server running",
		slog.String("address", addr),
		slog.Duration("read_timeout", cfg.Server.ReadTimeout),
		slog.Duration("write_timeout", cfg.Server.WriteTimeout),
	)

	select {
	case err := <-serverErr:
		appLogger.Error("Server failed", slog.Any("error", err))
		return err
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", slog.Any("error", err))
		return err
	}

	appLogger.Info("Server shutdown complete")
	return nil
}

func initLogger(cfg *config.LoggingConfig) (*logger.Logger, error) {
	loggerCfg := &logger.Config{
		Level:        cfg.Level,
		Format:       cfg.Format,
		Output:       cfg.Output,
		EnableSource: cfg.EnableCaller,
		TimeFormat:   time.RFC3339,
	}

	return logger.New(loggerCfg)
}

func initMongoDB(ctx context.Context, cfg *config.MongoDBConfig, logger *slog.Logger) (*mongodb.Client, error) {
	mongoConfig := &mongodb.Config{
		URI:            cfg.URI,
		Scheme:         cfg.Scheme,
		Host:           cfg.Host,
		User:           cfg.User,
		Password:       cfg.Password,
		AppName:        cfg.AppName,
		Database:       cfg.Database,
		ConnectTimeout: cfg.ConnectTimeout,
	}

	return mongodb.NewClient(ctx, mongoConfig, logger)
}

func closeMongoDB(client *mongodb.Client, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Close(ctx); err != nil {
		logger.Error("Failed to close MongoDB client", slog.Any("error", err))
	}
}

func initRabbitMQ(ctx context.Context, cfg *config.EventsConfig, logger *slog.Logger) (*rabbitmq.Client, error) {
	rabbitConfig := &rabbitmq.Config{
		Host:               cfg.Host,
		Port:               cfg.Port,
		User:               cfg.User,
		Password:           cfg.Password,
		VHost:              cfg.VHost,
		ExchangeName:       cfg.Exchange.Name,
		ExchangeType:       cfg.Exchange.Type,
		ExchangeDurable:    cfg.Exchange.Durable,
		ExchangeAutoDelete: cfg.Exchange.AutoDelete,
		RetryAttempts:      cfg.Connection.RetryAttempts,
		RetryInterval:      cfg.Connection.RetryInterval,
		Heartbeat:          cfg.Connection.Heartbeat,
		PublishRetries:     cfg.Publish.RetryAttempts,
		PublishRetryDelay:  cfg.Publish.RetryInterval,
		PublishBackoffMult: cfg.Publish.BackoffMultiplier,
	}

	return rabbitmq.NewClient(ctx, rabbitConfig, logger)
}

func initRouter(cfg *config.Config, logger *slog.Logger, mongoClient *mongodb.Client, rabbitClient *rabbitmq.Client) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	handlerDeps := &handler.Dependencies{
		Logger:      logger,
		Store:       storage.NewStorage(mongoClient.Collection(cfg.MongoDB.Collection), logger),
		Health:      mongoClient,
		ServiceName: cfg.App.Name,
	}
	if rabbitClient != nil {
		handlerDeps.Events = events.NewPublisher(rabbitClient, logger)
	}

	return router.SetupRouter(handlerDeps)
}
