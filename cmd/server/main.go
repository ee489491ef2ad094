package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sbilibin2017/gw-expense-tracker/docs"
	"github.com/sbilibin2017/gw-expense-tracker/internal/handlers"
	"github.com/sbilibin2017/gw-expense-tracker/internal/logger"
	"github.com/sbilibin2017/gw-expense-tracker/internal/middlewares"
	"github.com/sbilibin2017/gw-expense-tracker/internal/repositories"
	"github.com/sbilibin2017/gw-expense-tracker/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

const (
	storeMongo    = "mongo"
	storePostgres = "postgres"
	storeMemory   = "memory"
)

type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	StoreDriver   string
	StoreRetries  int
	MongoURI      string
	MongoDB       string
	PGHost        string
	PGPort        int
	PGUser        string
	PGPassword    string
	PGDB          string
	PGMaxOpen     int
	PGMaxIdle     int
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	RedisPoolSize int
	RedisMinIdle  int
	RedisExp      time.Duration
	KafkaBrokers  []string
	KafkaTopic    string
	CORSOrigins   []string
}

func (c config) postgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDB)
}

// expenseStore is what every storage backend provides to the service.
type expenseStore interface {
	services.ExpenseReader
	services.ExpenseWriter
}

// @title gw-expense-tracker API
// @version 1.0.0
// @description Resource server for personal income and expense records
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, storage, cache, messaging and logging configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.CORSOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "*"))

	// Store config
	cfg.StoreDriver = strings.ToLower(getEnv("STORE_DRIVER", storeMongo))
	switch cfg.StoreDriver {
	case storeMongo, storePostgres, storeMemory:
	default:
		return cfg, fmt.Errorf("STORE_DRIVER: unsupported driver %q", cfg.StoreDriver)
	}
	if cfg.StoreRetries, err = getInt("STORE_CONNECT_RETRIES", "5"); err != nil {
		return
	}

	// MongoDB config
	cfg.MongoURI = getEnv("MONGO_URI", "mongodb://localhost:27017")
	cfg.MongoDB = getEnv("MONGO_DB", "expense_tracker")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpen, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdle, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config, empty host disables the cache
	cfg.RedisHost = getEnv("REDIS_HOST", "")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdle, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}
	var expSecond int
	if expSecond, err = getInt("REDIS_EXP_SECOND", "60"); err != nil {
		return
	}
	cfg.RedisExp = time.Duration(expSecond) * time.Second

	// Kafka config, no brokers disables publishing
	cfg.KafkaBrokers = splitList(getEnv("KAFKA_BROKERS", ""))
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "expenses")

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// run initializes the logger, store, cache, event writer and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infow("logger initialized", "level", cfg.LogLevel)

	store, writeMiddlewares, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	var cache services.ExpenseCache
	if cfg.RedisHost != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdle,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis connection error: %w", err)
		}
		defer rdb.Close()
		cache = repositories.NewExpenseCacheRepository(rdb, cfg.RedisExp)
		logger.Log.Infow("expense list cache enabled", "addr", rdb.Options().Addr)
	}

	var events services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		kw := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		}
		defer kw.Close()
		events = kw
		logger.Log.Infow("expense events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	var serviceOpts []services.Option
	if writeMiddlewares != nil {
		// Side effects of a transactional write wait for its commit.
		serviceOpts = append(serviceOpts, services.WithAfterCommit(middlewares.AfterCommit))
	}
	expenseService := services.NewExpenseService(store, store, cache, events, serviceOpts...)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middlewares.RequestIDHeader},
		ExposedHeaders: []string{middlewares.RequestIDHeader},
		MaxAge:         300,
	}))

	handlers.RegisterExpenseRoutes(r, expenseService, writeMiddlewares...)

	docs.SwaggerInfo.Host = fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

// openStore connects the configured storage backend. Postgres writes run
// inside a per-request transaction, so it also returns the middleware for
// the mutating routes.
func openStore(ctx context.Context, cfg config) (expenseStore, []func(http.Handler) http.Handler, func(), error) {
	switch cfg.StoreDriver {
	case storeMemory:
		logger.Log.Warn("using in-memory store, data is lost on restart")
		return repositories.NewExpenseMemoryRepository(), nil, func() {}, nil

	case storePostgres:
		dsn := cfg.postgresDSN()
		logger.Log.Infow("connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)

		var db *sqlx.DB
		err := retryConnect(ctx, cfg.StoreRetries, func() error {
			var err error
			db, err = sqlx.ConnectContext(ctx, "pgx", dsn)
			return err
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("PostgreSQL connection error: %w", err)
		}
		db.SetMaxOpenConns(cfg.PGMaxOpen)
		db.SetMaxIdleConns(cfg.PGMaxIdle)

		if err := repositories.RunMigrations(dsn); err != nil {
			db.Close()
			return nil, nil, nil, err
		}

		repo := repositories.NewExpensePostgresRepository(db, middlewares.GetTxFromContext)
		mw := []func(http.Handler) http.Handler{middlewares.TxMiddleware(db)}
		return repo, mw, func() { db.Close() }, nil

	default:
		logger.Log.Infow("connecting to MongoDB", "db", cfg.MongoDB)

		var client *mongo.Client
		var repo *repositories.ExpenseMongoRepository
		err := retryConnect(ctx, cfg.StoreRetries, func() error {
			c, err := repositories.ConnectToMongoDB(ctx, cfg.MongoURI)
			if err != nil {
				return err
			}
			client = c
			repo = repositories.NewExpenseMongoRepository(c.Database(cfg.MongoDB).Collection(repositories.ExpensesCollection))
			return nil
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("MongoDB connection error: %w", err)
		}
		return repo, nil, func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Log.Errorw("MongoDB disconnect error", "error", err)
			}
		}, nil
	}
}

// retryConnect calls connect until it succeeds, retrying with exponential
// backoff at most retries times.
func retryConnect(ctx context.Context, retries int, connect func() error) error {
	if retries < 0 {
		retries = 0
	}
	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(retries)),
		ctx,
	)
	return backoff.RetryNotify(connect, b, func(err error, next time.Duration) {
		logger.Log.Warnw("store connection failed, retrying", "error", err, "retry_in", next)
	})
}
