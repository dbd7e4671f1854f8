package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"inn_ledger/internal/config"
	"inn_ledger/internal/domain/service/catalog"
	"inn_ledger/internal/domain/service/transaction"
	"inn_ledger/internal/infrastructure/idempotency"
	"inn_ledger/internal/infrastructure/persistence"
	"inn_ledger/internal/metrics"
	"inn_ledger/internal/port"
	"inn_ledger/internal/server"
	"inn_ledger/pkg/application/connectors"
	"inn_ledger/pkg/application/modules"
	"inn_ledger/pkg/contextx"
	"inn_ledger/pkg/logx"
	"inn_ledger/pkg/middlewarex"
	"inn_ledger/pkg/probe"
)

const memoryIdempotencyCleanup = 10 * time.Minute

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Run wires the ledger and blocks until ctx is cancelled or one of the
// servers fails.
func Run(ctx context.Context, cfg config.Config) error {
	decimal.MarshalJSONWithoutQuotes = true

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	defer pg.Close(ctx)

	if err := pg.Migrate(ctx, cfg.Postgres.MigrationFiles...); err != nil {
		return fmt.Errorf("pg.Migrate: %w", err)
	}

	store := persistence.NewStore(pg.Client(ctx))

	checks := map[string]probe.Check{
		"postgres": pg.Ping,
	}

	var idempotencyStore port.IdempotencyStore

	if cfg.Redis.Enabled() {
		rdb := &connectors.Redis{
			Username:       cfg.Redis.Username,
			Password:       cfg.Redis.Password,
			Address:        cfg.Redis.Address,
			DatabaseNumber: cfg.Redis.DatabaseNumber,
			PoolSize:       cfg.Redis.PoolSize,
		}
		defer rdb.Close(ctx)

		idempotencyStore = idempotency.NewRedis(rdb.Client(ctx))
		checks["redis"] = rdb.Ping
	} else {
		logger(ctx).Warn("redis is not configured, idempotency keys are kept in memory")

		idempotencyStore = idempotency.NewMemory(memoryIdempotencyCleanup)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}), //nolint:exhaustruct
	)

	transactionService := transaction.NewService(store, metrics.NewLedger(registry)).
		WithTimeout(cfg.Ledger.ReconcileTimeout).
		WithIdempotency(idempotencyStore, cfg.Idempotency.TTL)

	srv := server.NewServer(
		server.NewTransactionServer(transactionService),
		server.NewCatalogServer(catalog.NewService(store)),
	)

	masker := logx.NewSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.RequestLogging(masker, cfg.HTTP.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.HTTP.LogFieldMaxLen),
		middlewarex.Recovery,
	)
	srv.RegisterRoutes(router)

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{
		ListenAddress:     cfg.HTTP.ListenAddress,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.HTTP.ShutdownTimeout,
	}.Run(ctx, g, router)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Probe.ListenAddress,
		Checks:        checks,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.Metrics.ListenAddress,
		Gatherer:      registry,
	}.Run(ctx, g)

	logger(ctx).Info("application started", slog.String(logx.FieldAppName, cfg.App.Name), slog.String(logx.FieldAppVersion, cfg.App.Version))

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
