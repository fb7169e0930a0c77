package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SVO0808/SVO-STUDIO/pkg/health"
	"github.com/SVO0808/SVO-STUDIO/pkg/httpclient"
	pkgkafka "github.com/SVO0808/SVO-STUDIO/pkg/kafka"
	"github.com/SVO0808/SVO-STUDIO/pkg/middleware"

	"github.com/SVO0808/SVO-STUDIO/internal/catalog"
	"github.com/SVO0808/SVO-STUDIO/internal/config"
	"github.com/SVO0808/SVO-STUDIO/internal/event"
	handler "github.com/SVO0808/SVO-STUDIO/internal/handler/http"
	"github.com/SVO0808/SVO-STUDIO/internal/repository"
	memoryrepo "github.com/SVO0808/SVO-STUDIO/internal/repository/memory"
	redisrepo "github.com/SVO0808/SVO-STUDIO/internal/repository/redis"
	"github.com/SVO0808/SVO-STUDIO/internal/service"
)

// App wires together all dependencies and runs the storefront engine.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	healthHandler := health.NewHandler()

	// Cart storage: Redis when configured, in-memory otherwise.
	var (
		repo repository.CartRepository
		rdb  *redis.Client
	)
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		repo = redisrepo.NewCartRepository(rdb, cfg.CartTTL())
		healthHandler.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	} else {
		logger.Warn("no REDIS_ADDR configured, carts are stored in memory")
		repo = memoryrepo.NewCartRepository()
	}

	// Kafka producer. Without brokers, domain events are dropped.
	var producer *pkgkafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
		healthHandler.Register("kafka", func(ctx context.Context) error {
			return producer.Ping(ctx)
		})
	} else {
		logger.Warn("no KAFKA_BROKERS configured, domain events are dropped")
	}

	// Upstream catalog client behind retry and a circuit breaker.
	baseClient := httpclient.New(httpclient.DefaultConfig())
	breakerClient := httpclient.NewCircuitBreakerClient(
		baseClient,
		httpclient.DefaultCircuitBreakerConfig("catalog"),
		logger,
	)
	catalogClient := catalog.NewClient(breakerClient, cfg.CatalogBaseURL)

	// Build the dependency graph.
	eventProducer := event.NewProducer(producer, logger)
	cartService := service.NewCartService(repo, eventProducer, cfg.Pricing(), cfg.Coupons(), logger)
	checkoutService := service.NewCheckoutService(cartService, eventProducer, logger)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.Environment = cfg.Environment

	router := handler.NewRouter(cartService, checkoutService, catalogClient,
		healthHandler, corsCfg, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		rdb:        rdb,
		producer:   producer,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
