package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"library-store/internal/api"
	"library-store/internal/api/middleware"
	"library-store/internal/auth"
	"library-store/internal/batch"
	"library-store/internal/config"
	"library-store/internal/domain/account"
	"library-store/internal/domain/catalog"
	"library-store/internal/domain/customer"
	"library-store/internal/event"
	"library-store/internal/infrastructure/database/postgres"
	"library-store/internal/infrastructure/logging"
	"library-store/internal/seed"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// @title Library Store API
// @version 1.0
// @description Customer, membership and catalog management for the library store.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, logger := initializeApp()

	runMigrations(cfg, logger)
	dbPool := initializeDatabase(cfg, logger)
	defer closeDatabase(dbPool, logger)

	repos := initializeRepositories(dbPool, logger)
	rabbitMQConn := setupRabbitMQ(cfg, logger)
	publisher := initializeEventPublisher(cfg, rabbitMQConn, logger)
	redisClient := initializeRedisClient(cfg, logger)
	rateLimiter := middleware.NewRateLimiterMiddleware(cfg.Server.RateLimit, redisClientOrNil(redisClient), logger)

	accounts := account.NewAccountManager(repos.Customers, repos.Roles, logger)
	if err := seedDatabase(context.Background(), cfg.Seed, repos, accounts, logger); err != nil {
		logger.Error("Failed to seed database", slog.Any("error", err))
		os.Exit(1)
	}

	services := api.Services{
		Customers: customer.NewCustomerService(repos.Customers, repos.Memberships, publisher, logger),
		Catalog:   catalog.NewService(repos.Books, repos.Genres, repos.Memberships, logger),
		Accounts:  accounts,
	}
	tokens := auth.NewTokenService(cfg.Server.Auth.JWTSecret, cfg.Server.Auth.TokenTTL)

	cronScheduler := startBatchJobs(cfg, logger, newsletterJob(services, publisher, logger))
	router := api.SetupRouter(rateLimiter, services, tokens, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, rabbitMQConn, redisClient, rateLimiter, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

func runMigrations(cfg *config.Config, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := postgres.Migrate(ctx, cfg.Database.URL, logger); err != nil {
		logger.Error("Failed to migrate database schema", "error", err)
		os.Exit(1)
	}
}

func initializeDatabase(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(context.Background(), cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

func initializeRepositories(db postgres.DBPool, logger *slog.Logger) seed.Repositories {
	logger.Info("Initializing repositories...")
	return seed.Repositories{
		Memberships: postgres.NewMembershipRepository(db, logger),
		Genres:      postgres.NewGenreRepository(db, logger),
		Books:       postgres.NewBookRepository(db, logger),
		Roles:       postgres.NewRoleRepository(db, logger),
		Customers:   postgres.NewCustomerRepository(db, logger),
	}
}

// seedDatabase fills empty tables before the server accepts requests.
func seedDatabase(ctx context.Context, cfg config.SeedConfig, repos seed.Repositories, accounts account.Manager, logger *slog.Logger) error {
	if !cfg.Enabled {
		logger.Info("Database seeding is disabled via configuration.")
		return nil
	}
	result, err := seed.NewSeeder(repos, accounts, cfg, logger).Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("Database seeding complete.", slog.String("profile", cfg.Profile), slog.Int("rows_inserted", result.Inserted()))
	return nil
}

func initializeEventPublisher(cfg *config.Config, conn *amqp.Connection, logger *slog.Logger) event.EventPublisher {
	if conn == nil {
		return nil
	}
	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to initialize RabbitMQ event publisher, events disabled", slog.Any("error", err))
		return nil
	}
	return publisher
}

func newsletterJob(services api.Services, publisher event.EventPublisher, logger *slog.Logger) *batch.NewsletterDigestJob {
	if publisher == nil {
		logger.Warn("No event publisher available, newsletter digest job will not be scheduled.")
		return nil
	}
	return batch.NewNewsletterDigestJob(services.Customers, services.Catalog, publisher, logger)
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, rabbitConn *amqp.Connection, redisClient *redis.Client,
	rateLimiter *middleware.RateLimiterMiddleware, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	triggerReason := waitForShutdownTrigger(shutdownChan, serverErrors, logger)

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	stopCronScheduler(cronScheduler, logger)
	if rateLimiter != nil {
		rateLimiter.Stop()
	}
	closeRabbitMQConnection(rabbitConn, logger)
	closeRedisClient(redisClient, logger)
	shutdownHTTPServer(srv, serverErrors, logger)

	logger.Info("Application shutdown process complete.")
}

func waitForShutdownTrigger(shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) string {
	select {
	case sig := <-shutdownChan:
		logger.Info("Shutdown signal received.", "signal", sig.String())
		return "signal: " + sig.String()
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		logger.Info("Server goroutine finished before signal.", "error", err)
		return "server exited"
	}
}

func stopCronScheduler(cronScheduler *cron.Cron, logger *slog.Logger) {
	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}
}

func closeRabbitMQConnection(rabbitConn *amqp.Connection, logger *slog.Logger) {
	if rabbitConn == nil {
		logger.Info("RabbitMQ connection was not established, skipping close.")
		return
	}
	if rabbitConn.IsClosed() {
		logger.Info("RabbitMQ connection already closed, skipping close.")
		return
	}
	logger.Info("Closing RabbitMQ connection...")
	if err := rabbitConn.Close(); err != nil {
		logger.Error("Failed to close RabbitMQ connection gracefully", slog.Any("error", err))
	} else {
		logger.Info("RabbitMQ connection closed.")
	}
}

func shutdownHTTPServer(srv *http.Server, serverErrors <-chan error, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server graceful shutdown failed", "error", err)
		} else {
			logger.Info("HTTP server shutdown initiated.")
		}
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	logger.Info("Waiting for server goroutine to confirm exit...")
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		} else {
			logger.Info("Server goroutine confirmed exit.")
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}
}

func initializeRedisClient(cfg *config.Config, logger *slog.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		logger.Info("Redis is disabled via configuration, rate limiting stays in-process.")
		return nil
	}
	logger.Info("Initializing central Redis client...")
	if cfg.Redis.Addr == "" {
		logger.Error("Redis address (addr) is not configured.")
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if status := rdb.Ping(ctx); status.Err() != nil {
		logger.Error("Failed to connect to Redis", "error", status.Err(), "addr", cfg.Redis.Addr)
		_ = rdb.Close()
		os.Exit(1)
	}

	logger.Info("Central Redis client connected successfully.", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	return rdb
}

// redisClientOrNil keeps a nil *redis.Client from becoming a non-nil interface.
func redisClientOrNil(c *redis.Client) redis.UniversalClient {
	if c == nil {
		return nil
	}
	return c
}

func closeRedisClient(redisClient *redis.Client, logger *slog.Logger) {
	if redisClient == nil {
		logger.Info("Redis client was not initialized, skipping close.")
		return
	}
	logger.Info("Closing central Redis client connection...")
	if err := redisClient.Close(); err != nil {
		logger.Error("Failed to close central Redis client connection gracefully", "error", err)
	} else {
		logger.Info("Central Redis client connection closed.")
	}
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, digestJob *batch.NewsletterDigestJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	if digestJob != nil {
		scheduleNewsletterDigest(c, cfg.Batch, digestJob, logger)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func scheduleNewsletterDigest(c *cron.Cron, cfg config.BatchConfig, digestJob *batch.NewsletterDigestJob, logger *slog.Logger) {
	scheduleSpec := cfg.NewsletterSchedule
	if scheduleSpec == "" {
		scheduleSpec = "0 8 * * 1"
		logger.Warn("Newsletter digest schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.NewsletterTimeout
	if jobTimeout <= 0 {
		jobTimeout = 5 * time.Minute
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "NewsletterDigest")
		jobLogger.Info("Cron triggered: Running newsletter digest job.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if _, runErr := digestJob.Run(ctx); runErr != nil {
			jobLogger.Error("Newsletter digest job finished with error", slog.Any("error", runErr))
		} else {
			jobLogger.Info("Newsletter digest job finished successfully.")
		}
	}))
	if err != nil {
		logger.Error("Failed to schedule newsletter digest job", "schedule", scheduleSpec, slog.Any("error", err))
		return
	}
	logger.Info("Scheduled newsletter digest job", "schedule", scheduleSpec, "job_id", jobID)
}

func connectRabbitMQ(uri string, logger *slog.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	retryCount := 5
	for i := 1; i <= retryCount; i++ {
		conn, err = amqp.Dial(uri)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ")

			go func() {
				blockChan := conn.NotifyBlocked(make(chan amqp.Blocking))
				closeChan := conn.NotifyClose(make(chan *amqp.Error))

				select {
				case b := <-blockChan:
					logger.Warn("RabbitMQ Connection Blocked", "reason", b.Reason)
				case e := <-closeChan:
					logger.Error("RabbitMQ Connection Closed", slog.Any("error", e))
				}
			}()

			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ, retrying...",
			slog.Int("attempt", i),
			slog.Int("max_attempts", retryCount),
			slog.Any("error", err),
		)
		time.Sleep(time.Duration(i*2) * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", retryCount, err)
}

// setupRabbitMQ returns nil when RabbitMQ is disabled or unreachable; the
// service then runs without publishing events.
func setupRabbitMQ(cfg *config.Config, logger *slog.Logger) *amqp.Connection {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ is disabled via configuration, events will not be published.")
		return nil
	}
	if cfg.RabbitMQ.URL == "" {
		logger.Error("RabbitMQ URL is not configured")
		return nil
	}

	conn, err := connectRabbitMQ(cfg.RabbitMQ.URL, logger)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", "error", err)
		return nil
	}
	return conn
}
