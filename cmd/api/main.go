package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "github.com/g5stats/stats-api/docs"
	"github.com/g5stats/stats-api/internal/auth"
	"github.com/g5stats/stats-api/internal/config"
	"github.com/g5stats/stats-api/internal/handlers"
	"github.com/g5stats/stats-api/internal/logic"
	"github.com/g5stats/stats-api/internal/store"
	"github.com/g5stats/stats-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Relational store
	db, err := store.Open(ctx, store.Config{
		Driver:          cfg.DatabaseDriver,
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer db.Close()
	sugar.Infow("Connected to database", "driver", db.Dialect())

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Optional event sinks
	var chConn driver.Conn
	if cfg.ClickHouseURL != "" {
		chConn, err = openClickHouse(ctx, cfg.ClickHouseURL)
		if err != nil {
			return err
		}
		defer chConn.Close()
		if cfg.AutoMigrate {
			if err := worker.EnsureSchema(ctx, chConn); err != nil {
				return err
			}
		}
		sugar.Info("Connected to ClickHouse")
	}

	var rdb *redis.Client
	var live worker.LiveStore
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid redis url: %w", err)
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to ping redis: %w", err)
		}
		live = worker.NewRedisLiveStore(rdb)
		sugar.Info("Connected to Redis")
	}

	var events handlers.EventQueue
	var pool *worker.Pool
	if cfg.EventSinkEnabled() {
		pool = worker.NewPool(worker.PoolConfig{
			WorkerCount:   cfg.WorkerCount,
			QueueSize:     cfg.QueueSize,
			BatchSize:     cfg.BatchSize,
			FlushInterval: cfg.FlushInterval,
			ClickHouse:    chConn,
			Live:          live,
			Channel:       cfg.EventsChannel,
			Logger:        logger,
		})
		pool.Start(context.Background())
		events = pool
	} else {
		sugar.Info("No event sink configured, stat events are discarded")
	}

	authService := auth.NewService(cfg.JWTSecret, cfg.TokenTTL)
	if !authService.Enabled() {
		sugar.Warn("JWT_SECRET not set, bearer tokens are rejected")
	}

	h := handlers.New(handlers.Config{
		Events:      events,
		Database:    db,
		Migrator:    db,
		ClickHouse:  chConn,
		Redis:       rdb,
		Auth:        authService,
		Logger:      logger,
		PlayerStats: logic.NewPlayerStatsService(db),
		Ranks:       logic.NewRankService(db),
	})

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: h.Routes(handlers.RouterConfig{
			AllowedOrigins: cfg.AllowedOrigins,
			RequestTimeout: cfg.RequestTimeout,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sugar.Infow("Server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sugar.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)

		// Requests are drained; flush what they queued.
		if pool != nil {
			pool.Stop()
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}
	sugar.Info("Server stopped gracefully")
	return nil
}

func openClickHouse(ctx context.Context, dsn string) (driver.Conn, error) {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid clickhouse url: %w", err)
	}
	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open clickhouse: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}
	return conn, nil
}
