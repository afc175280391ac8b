package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/jobscout/jobscout-be/internal/api/handler"
	"github.com/jobscout/jobscout-be/internal/api/router"
	"github.com/jobscout/jobscout-be/internal/api/storage"
	"github.com/jobscout/jobscout-be/internal/config"
	"github.com/jobscout/jobscout-be/internal/events"
	"github.com/jobscout/jobscout-be/internal/files"
	"github.com/jobscout/jobscout-be/internal/matcher"
	"github.com/jobscout/jobscout-be/internal/scraper"
	"github.com/jobscout/jobscout-be/internal/search"
	"github.com/jobscout/jobscout-be/shared/logger"
	"github.com/jobscout/jobscout-be/shared/postgresql"
	"github.com/jobscout/jobscout-be/shared/rabbitmq"
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

	appLogger.Info("Starting API service",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
	)

	dbClient, err := initPostgreSQL(&cfg.Database, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	appLogger.Info("Database connection established")

	store := storage.NewStorage(dbClient, appLogger.Logger)

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	err = store.Migrate(migrateCtx)
	cancelMigrate()
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	rabbitClient, err := initRabbitMQ(&cfg.RabbitMQ, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize RabbitMQ: %w", err)
	}

	appLogger.Info("RabbitMQ connection established")

	generator, err := matcher.NewGenerator(context.Background(), cfg.Scoring.APIKey, cfg.Scoring.Model)
	if err != nil {
		return fmt.Errorf("failed to initialize scoring client: %w", err)
	}

	pipeline := search.NewPipeline(
		store,
		initAggregator(&cfg.Scraper, appLogger.Logger),
		matcher.NewMatcher(generator, cfg.Scoring.BatchSize, appLogger.Logger),
		store,
		events.NewPublisher(rabbitClient, appLogger.Logger),
		search.Config{
			FetchTimeout: cfg.Scraper.FetchTimeout,
			ScoreTimeout: cfg.Scoring.Timeout,
		},
		appLogger.Logger,
	)

	r := initRouter(cfg, appLogger.Logger, dbClient, store, pipeline)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	appLogger.Info("Starting HTTP server",
		slog.String("address", addr),
		slog.Duration("read_timeout", cfg.Server.ReadTimeout),
		slog.Duration("write_timeout", cfg.Server.WriteTimeout),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed to start",
				slog.Any("error", err),
			)
			os.Exit(1)
		}
	}()

	appLogger.Info("API service is running",
		slog.String("address", addr),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)

	cleanup := func() {
		cancel()
		if dbClient != nil {
			dbClient.Close()
		}
		if rabbitClient != nil {
			rabbitClient.Close()
		}
	}
	defer cleanup()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown",
			slog.Any("error", err),
		)
		return err
	}

	appLogger.Info("Server shutdown complete")
	return nil
}

// initLogger initializes and configures the application logger
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

// initPostgreSQL initializes the PostgreSQL database client
func initPostgreSQL(cfg *config.DatabaseConfig, logger *slog.Logger) (*postgresql.Client, error) {
	dbConfig := &postgresql.Config{
		Host:            cfg.Host,
		Port:            cfg.Port,
		User:            cfg.User,
		Password:        cfg.Password,
		Database:        cfg.Database,
		SSLMode:         cfg.SSLMode,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
	}

	return postgresql.NewClient(dbConfig, logger)
}

// initRabbitMQ initializes the RabbitMQ client
func initRabbitMQ(cfg *config.RabbitMQConfig, logger *slog.Logger) (*rabbitmq.Client, error) {
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
		QueueName:          cfg.Queue.Name,
		QueueDurable:       cfg.Queue.Durable,
		QueueAutoDelete:    cfg.Queue.AutoDelete,
		RoutingKey:         cfg.RoutingKey,
		RetryAttempts:      cfg.Connection.RetryAttempts,
		RetryInterval:      cfg.Connection.RetryInterval,
		Heartbeat:          cfg.Connection.Heartbeat,
		PublishRetries:     cfg.Publish.RetryAttempts,
		PublishRetryDelay:  cfg.Publish.RetryInterval,
	}

	return rabbitmq.NewClient(rabbitConfig, logger)
}

// initAggregator wires the enabled job sources in priority order
func initAggregator(cfg *config.ScraperConfig, logger *slog.Logger) *scraper.Aggregator {
	var sources []scraper.Source

	if cfg.JSearch.Enabled && cfg.JSearch.APIKey != "" {
		sources = append(sources, scraper.NewJSearchSource(cfg.JSearch.APIKey, nil))
	}
	if cfg.Adzuna.Enabled && cfg.Adzuna.AppID != "" {
		sources = append(sources, scraper.NewAdzunaSource(cfg.Adzuna.AppID, cfg.Adzuna.AppKey, cfg.Adzuna.Country, nil))
	}

	if len(sources) == 0 {
		logger.Warn("No job sources configured, searches will fail")
	}

	return scraper.NewAggregator(sources, cfg.Limit, logger)
}

// initRouter initializes the Gin router with all routes and middleware
func initRouter(
	cfg *config.Config,
	logger *slog.Logger,
	dbClient *postgresql.Client,
	store *storage.Storage,
	pipeline *search.Pipeline,
) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	handlerDeps := &handler.Dependencies{
		Logger:        logger,
		Search:        pipeline,
		Jobs:          store,
		Profiles:      store,
		Applications:  store,
		Resumes:       files.NewStore(cfg.Upload.Endpoint, nil),
		MaxResumeSize: cfg.Upload.MaxSizeBytes,
	}

	return router.SetupRouter(handlerDeps, dbClient)
}
