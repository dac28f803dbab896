package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/simaogato/finance-dashboard/internal/adapter/grpc"
	"github.com/simaogato/finance-dashboard/internal/adapter/httpapi"
	"github.com/simaogato/finance-dashboard/internal/adapter/repository/memory"
	"github.com/simaogato/finance-dashboard/internal/adapter/repository/postgres"
	"github.com/simaogato/finance-dashboard/internal/adapter/repository/resilient"
	"github.com/simaogato/finance-dashboard/internal/config"
	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/logging"
	"github.com/simaogato/finance-dashboard/internal/metrics"
	promcollector "github.com/simaogato/finance-dashboard/internal/metrics/prometheus"
	"github.com/simaogato/finance-dashboard/internal/usecase/dashboard"
	"github.com/simaogato/finance-dashboard/internal/usecase/finance"
	"github.com/simaogato/finance-dashboard/internal/usecase/seeder"
)

const (
	metricsNamespace = "finance"
	startupTimeout   = 30 * time.Second
	shutdownTimeout  = 10 * time.Second
)

// repositories is the storage backend selected by configuration
type repositories struct {
	transactions domain.TransactionRepository
	categories   domain.CategoryRepository
	periods      domain.PeriodReader
	summary      domain.SummaryReader
	close        func() error
}

func main() {
	cfg, envLoaded, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: cfg.LogDev,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if !envLoaded {
		logger.Info("no .env file found, using environment variables")
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *logging.Logger) error {
	// 1. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := promcollector.NewPrometheusCollector(metricsNamespace)
	if err := collector.Register(registry); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	// 2. Storage backend
	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	repos, err := openRepositories(startCtx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := repos.close(); err != nil {
			logger.Warn("failed to close storage", zap.Error(err))
		}
	}()

	if cfg.BreakerEnabled {
		repos = withBreaker(repos, cfg, collector, logger)
	}

	// 3. Default categories
	if cfg.SeedCategories {
		created, err := seeder.NewCategorySeeder(repos.categories).Seed(startCtx)
		if err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
		logger.Info("categories seeded", zap.Int("created", created))
	}

	// 4. Application state
	store := finance.NewStore(repos.transactions, repos.categories,
		finance.WithMetrics(collector),
		finance.WithLogger(logger),
		finance.WithNotifier(finance.NewLogNotifier(logger)),
	)
	if err := store.Initialize(startCtx); err != nil {
		// /status stays degraded until a refresh or a client Initialize succeeds
		logger.Error("initial load failed", zap.Error(err))
	}

	scheduler, err := newRefreshScheduler(cfg.RefreshSchedule, store, logger)
	if err != nil {
		return err
	}
	if scheduler != nil {
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()
	}

	// 5. gRPC server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.RecoveryInterceptor(logger),
			grpcadapter.LoggingInterceptor(logger),
		),
	)
	dashboardService := dashboard.NewDashboardService(store)
	grpcadapter.RegisterFinanceServiceServer(grpcServer,
		grpcadapter.NewServer(store, dashboardService, repos.periods, repos.summary))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.GRPCAddr, err)
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("gRPC server listening", zap.String("addr", cfg.GRPCAddr))
		serveErr <- grpcServer.Serve(lis)
	}()

	// 6. Ops server
	httpConfig := httpapi.DefaultServerConfig()
	httpConfig.Address = cfg.HTTPAddr
	opsServer := httpapi.NewServer(store, registry, logger, httpConfig)
	opsServer.Start()

	return waitForShutdown(logger, grpcServer, opsServer, serveErr)
}

// openRepositories connects the configured backend
func openRepositories(ctx context.Context, cfg *config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.DataBackend {
	case config.BackendMemory:
		logger.Info("using in-memory storage")
		mem := memory.NewStore()
		txRepo := mem.Transactions()
		return repositories{
			transactions: txRepo,
			categories:   mem.Categories(),
			periods:      txRepo,
			summary:      txRepo,
			close:        func() error { return nil },
		}, nil

	default:
		if cfg.RunMigrations {
			if err := postgres.RunMigrations(cfg.DBConnStr); err != nil {
				return repositories{}, fmt.Errorf("failed to run migrations: %w", err)
			}
			logger.Info("database migrations applied")
		}

		db, err := postgres.NewDB(ctx, cfg.DBConnStr)
		if err != nil {
			return repositories{}, fmt.Errorf("failed to connect to database: %w", err)
		}
		txRepo := postgres.NewTransactionRepository(db)
		return repositories{
			transactions: txRepo,
			categories:   postgres.NewCategoryRepository(db),
			periods:      txRepo,
			summary:      txRepo,
			close:        db.Close,
		}, nil
	}
}

// withBreaker puts one circuit breaker in front of both repositories
func withBreaker(repos repositories, cfg *config.Config, collector metrics.Collector, logger *logging.Logger) repositories {
	breakerConfig := resilient.DefaultConfig()
	breakerConfig.MaxFailures = cfg.BreakerMaxFailures
	breakerConfig.OpenTimeout = cfg.BreakerOpenTimeout

	breaker := resilient.NewBreaker(breakerConfig, collector, logger)
	txRepo := resilient.NewTransactionRepository(repos.transactions, breaker)

	repos.transactions = txRepo
	repos.categories = resilient.NewCategoryRepository(repos.categories, breaker)
	repos.periods = txRepo
	repos.summary = txRepo
	return repos
}

// waitForShutdown waits for SIGTERM, SIGINT or a serve failure and stops both servers
func waitForShutdown(logger *logging.Logger, grpcServer *grpclib.Server, opsServer *httpapi.Server, serveErr <-chan error) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	var err error
	select {
	case sig := <-sigChan:
		logger.Info("shutting down gracefully", zap.String("signal", sig.String()))
	case err = <-serveErr:
		logger.Error("gRPC server stopped unexpectedly", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if stopErr := opsServer.Stop(ctx); stopErr != nil {
		logger.Warn("ops server shutdown failed", zap.Error(stopErr))
	}

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")
	return err
}

// newRefreshScheduler re-runs Initialize on the given cron spec.
// An empty schedule disables refreshing and returns nil.
func newRefreshScheduler(spec string, store *finance.Store, logger *logging.Logger) (*cron.Cron, error) {
	if spec == "" {
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		defer cancel()
		if err := store.Initialize(ctx); err != nil {
			logger.Warn("scheduled refresh failed", zap.Error(err))
			return
		}
		logger.Debug("state refreshed")
	})
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	return c, nil
}
