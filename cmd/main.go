// jobmate-marketplace-service
//
// Professionals directory and hiring marketplace backed by one JSON document.
// Exposes a REST API for:
//   - registering professionals and organizations
//   - browsing the directory by category and free-text search
//   - requesting bookings of a professional
//   - posting and browsing jobs
//
// The document lives in a file, Postgres, Redis or Mongo (STORE_BACKEND).
// Successful writes are published to Redis when REDIS_URL is set.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"jobmate/marketplace-service/internal/config"
	"jobmate/marketplace-service/internal/db"
	"jobmate/marketplace-service/internal/grpcserver"
	"jobmate/marketplace-service/internal/httpapi"
	"jobmate/marketplace-service/internal/logging"
	"jobmate/marketplace-service/internal/marketplace"
	"jobmate/marketplace-service/internal/scheduler"
	"jobmate/marketplace-service/internal/store"
)

const (
	version     = "1.0.0"
	documentKey = "marketplace"
	lockTTL     = 10 * time.Second
)

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[marketplace-service] Config error: %v", err)
	}

	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("[marketplace-service] Logger error: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Redis (events, optional store) ──────────────────────────────────────
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		logger.Info("connecting to Redis")
		rdb, err = db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()
		logger.Info("Redis connected")
	}

	// ── Store ────────────────────────────────────────────────────────────────
	backend, closeBackend, err := openBackend(ctx, cfg, rdb, logger)
	if err != nil {
		logger.Fatal("store backend", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer closeBackend()

	st := store.New(backend, logger)

	opts := []marketplace.Option{}
	if rdb != nil {
		opts = append(opts, marketplace.WithPublisher(marketplace.NewRedisPublisher(rdb)))
	}
	svc := marketplace.NewService(st, logger, opts...)

	// A corrupt document is reported, never replaced.
	if err := svc.Ping(ctx); err != nil {
		logger.Fatal("store unreadable", zap.String("store", st.Location()), zap.Error(err))
	}
	logger.Info("store ready", zap.String("store", st.Location()))

	// ── gRPC health ──────────────────────────────────────────────────────────
	grpcSrv := grpcserver.NewServer(logger)
	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPCPort))
	if err != nil {
		logger.Fatal("grpc listen", zap.String("port", cfg.GRPCPort), zap.Error(err))
	}
	go func() {
		if err := grpcSrv.Serve(lis); err != nil {
			logger.Error("gRPC server error", zap.Error(err))
		}
	}()

	// ── Scheduler ────────────────────────────────────────────────────────────
	sched := scheduler.New(st, afero.NewOsFs(), cfg.SnapshotDir, cfg.SnapshotIntervalHours, logger,
		scheduler.WithHealth(grpcSrv.SetServing))
	if err := sched.Start(ctx); err != nil {
		logger.Fatal("scheduler", zap.Error(err))
	}

	// ── HTTP server ──────────────────────────────────────────────────────────
	router := httpapi.NewRouter(svc, logger, httpapi.Options{
		Version:           version,
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("version", version), zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	sched.Stop()
	grpcSrv.Stop()
	logger.Info("stopped")
}

// openBackend connects the configured store backend and returns a function
// releasing its connections.
func openBackend(ctx context.Context, cfg *config.Config, rdb *redis.Client, logger *zap.Logger) (store.Backend, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.BackendMemory:
		logger.Warn("using in-memory store; data is lost on exit")
		return store.NewMemoryBackend(), noop, nil

	case config.BackendPostgres:
		pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		b := store.NewPostgresBackend(pool, documentKey)
		if err := b.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return b, pool.Close, nil

	case config.BackendRedis:
		return store.NewRedisBackend(rdb, documentKey+":document", lockTTL), noop, nil

	case config.BackendMongo:
		client, err := db.NewMongoClient(ctx, cfg.MongoURL)
		if err != nil {
			return nil, noop, err
		}
		coll := client.Database(cfg.MongoDatabase).Collection("documents")
		return store.NewMongoBackend(coll, documentKey, lockTTL), func() {
			client.Disconnect(context.Background()) //nolint:errcheck
		}, nil

	default:
		return store.NewFileBackend(afero.NewOsFs(), cfg.DataFile), noop, nil
	}
}
