package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/blog-auth-server/internal/api/grpc/context"
	"github.com/dtroode/blog-auth-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/blog-auth-server/internal/api/grpc/server"
	"github.com/dtroode/blog-auth-server/internal/config"
	"github.com/dtroode/blog-auth-server/internal/events"
	"github.com/dtroode/blog-auth-server/internal/logger"
	"github.com/dtroode/blog-auth-server/internal/model"
	"github.com/dtroode/blog-auth-server/internal/obs"
	"github.com/dtroode/blog-auth-server/internal/repository/postgres"
	redisrepo "github.com/dtroode/blog-auth-server/internal/repository/redis"
	"github.com/dtroode/blog-auth-server/internal/server"
	"github.com/dtroode/blog-auth-server/internal/service"
	storage "github.com/dtroode/blog-auth-server/internal/storage/minio"
	"github.com/dtroode/blog-auth-server/internal/token"
	"github.com/dtroode/blog-auth-server/internal/worker"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	logAppVersion()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	store, purger, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize token store", "backend", cfg.Store.Backend, "error", err)
	}
	defer closeStore()

	sink, closeSinks, err := buildSinks(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize audit sinks", "error", err)
	}
	dispatcher := events.NewDispatcher(cfg.Audit.BufferSize, sink, logger)
	obs.RegisterDroppedEvents(reg, dispatcher.Dropped)

	codec := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	tokenService := service.NewTokenService(codec, store, dispatcher, obs.NewTokenMetrics(reg), logger)
	ctxMgr := grpcctx.NewManager()

	srv := registerGRPCServer(logger, tokenService, ctxMgr, cfg.GRPC.IssuerKey, fmt.Sprintf(":%s", cfg.GRPC.Port))

	var sl model.SecurityLayer
	if cfg.GRPC.EnableHTTPS {
		sl = server.NewTLSListener(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	metricsServer := obs.BootstrapMetricsServer(cfg.Metrics.Addr, reg, store.Ping, logger)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	if purger != nil {
		cleanup := worker.NewCleanup(purger, cfg.Store.CleanupInterval, reg, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := cleanup.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("cleanup worker stopped", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during metrics server shutdown", "error", err)
	}

	wg.Wait()
	dispatcher.Close()
	closeSinks()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

// openStore returns the configured token store. purger is nil for backends
// with native expiry.
func openStore(ctx context.Context, cfg *config.Config, logger *logger.Logger) (model.TokenStore, model.ExpiredTokenPurger, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, nil, err
		}
		repo := postgres.NewAuthTokenRepository(db)
		return repo, repo, func() { _ = db.Close() }, nil

	case config.StoreBackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		repo := redisrepo.NewAuthTokenRepository(client, cfg.Redis.KeyPrefix)
		if err := repo.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, nil, fmt.Errorf("failed to reach redis: %w", err)
		}
		logger.Info("using redis token store", "addr", cfg.Redis.Addr)
		return repo, nil, func() { _ = client.Close() }, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func buildSinks(ctx context.Context, cfg *config.Config, logger *logger.Logger) (model.EventSink, func(), error) {
	sinks := events.FanOut{events.NewLogSink(logger)}
	closers := []func() error{}

	if cfg.Kafka.Enabled {
		k := events.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		sinks = append(sinks, k)
		closers = append(closers, k.Close)
	}

	if cfg.Storage.Enabled {
		archive, err := storage.New(ctx, storage.Options{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, events.NewArchiveSink(archive))
	}

	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Error("failed to close audit sink", "error", err)
			}
		}
	}
	return sinks, closeAll, nil
}

func registerGRPCServer(
	logger *logger.Logger,
	tokenService *service.TokenService,
	ctxMgr model.ContextManager,
	issuerKey string,
	addr string,
) *grpcServer.GRPCServer {
	r := router.New(tokenService, ctxMgr, issuerKey, logger)
	s := r.Register()

	reflection.Register(s)

	return grpcServer.NewGRPCServer(s, addr)
}
