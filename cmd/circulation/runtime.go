package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/aegislib/circulation/eventstore/memengine"
	"github.com/aegislib/circulation/eventstore/oteladapters"
	"github.com/aegislib/circulation/eventstore/postgresengine"
	"github.com/aegislib/circulation/eventstore/sqliteengine"
	"github.com/aegislib/circulation/library/catalog"
	"github.com/aegislib/circulation/library/engine"
	"github.com/aegislib/circulation/library/seed"
	"github.com/aegislib/circulation/library/shell"
	"github.com/aegislib/circulation/library/shell/config"
)

const (
	instrumentationName = "github.com/aegislib/circulation"
	shutdownTimeout     = 5 * time.Second
)

// telemetry is what both the event store and the engine get instrumented with.
type telemetry struct {
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
	metrics          shell.MetricsCollector
	tracing          shell.TracingCollector
}

// runtime owns everything a subcommand needs and releases it in Close.
type runtime struct {
	engine  *engine.Engine
	data    seed.Data
	logger  shell.ContextualLogger
	closers []func(ctx context.Context) error
}

func openRuntime(ctx context.Context, s *settings, logOutput io.Writer) (*runtime, error) {
	rt := &runtime{}

	level, err := s.level()
	if err != nil {
		return nil, err
	}

	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewJSONHandler(logOutput, &slog.HandlerOptions{Level: level}),
	)

	rt.logger = logger
	tel := telemetry{logger: logger.Slog(), contextualLogger: logger}

	if s.otlpEndpoint != "" {
		providers, providersErr := config.NewObservabilityProviders(ctx, config.ObservabilityConfig{
			ServiceName:    defaultServiceName,
			ServiceVersion: serviceVersion,
			Endpoint:       s.otlpEndpoint,
			Insecure:       s.otlpInsecure,
		})
		if providersErr != nil {
			return nil, providersErr
		}

		rt.closers = append(rt.closers, providers.Shutdown)
		tel.metrics = oteladapters.NewMetricsCollector(providers.MeterProvider.Meter(instrumentationName))
		tel.tracing = oteladapters.NewTracingCollector(providers.TracerProvider.Tracer(instrumentationName))
	}

	store, err := rt.openStore(ctx, s, tel)
	if err != nil {
		return nil, errors.Join(err, rt.Close())
	}

	data := seed.NewGenerator(rand.New(rand.NewSource(s.seed)), time.Now()).Generate(seed.DefaultSizes()) //nolint:gosec // sample data
	books, err := catalog.New(data.Books)
	if err != nil {
		return nil, errors.Join(err, rt.Close())
	}

	e, err := engine.New(store, books, rt.engineOptions(s, tel)...)
	if err != nil {
		return nil, errors.Join(err, rt.Close())
	}

	rt.engine = e
	rt.data = data

	if !s.skipBootstrap {
		result, bootstrapErr := e.Bootstrap(ctx, data)
		if bootstrapErr != nil {
			return nil, errors.Join(bootstrapErr, rt.Close())
		}

		logger.InfoContext(ctx, "bootstrap finished",
			"appended_events", result.AppendedEvents,
			"skipped_chunks", result.SkippedChunks,
		)
	}

	return rt, nil
}

func (rt *runtime) engineOptions(s *settings, tel telemetry) []engine.Option {
	opts := []engine.Option{
		engine.WithOperator(s.operator),
		engine.WithLogger(tel.logger),
		engine.WithContextualLogger(tel.contextualLogger),
	}

	if s.enrollOnApproval {
		opts = append(opts, engine.WithEnrollOnApproval())
	}

	if tel.metrics != nil {
		opts = append(opts, engine.WithMetrics(tel.metrics))
	}

	if tel.tracing != nil {
		opts = append(opts, engine.WithTracing(tel.tracing))
	}

	return opts
}

func (rt *runtime) openStore(ctx context.Context, s *settings, tel telemetry) (shell.EventStore, error) {
	switch s.store {
	case storePostgres:
		return rt.openPostgres(ctx, s, tel)

	case storeSQLite:
		return rt.openSQLite(ctx, s, tel)

	default:
		return memengine.NewEventStore(memoryOptions(tel)...)
	}
}

func (rt *runtime) openPostgres(ctx context.Context, s *settings, tel telemetry) (shell.EventStore, error) {
	var (
		es  *postgresengine.EventStore
		err error
	)

	opts := postgresOptions(tel)

	switch s.adapter {
	case adapterSQL:
		db, dbErr := config.PostgresSQLDB(ctx, s.postgresDSN)
		if dbErr != nil {
			return nil, dbErr
		}

		rt.closers = append(rt.closers, func(context.Context) error { return db.Close() })
		es, err = postgresengine.NewEventStoreFromSQLDB(db, opts...)

	case adapterSQLX:
		db, dbErr := config.PostgresSQLX(ctx, s.postgresDSN)
		if dbErr != nil {
			return nil, dbErr
		}

		rt.closers = append(rt.closers, func(context.Context) error { return db.Close() })
		es, err = postgresengine.NewEventStoreFromSQLX(db, opts...)

	default:
		pool, poolErr := config.PostgresPGXPool(ctx, s.postgresDSN)
		if poolErr != nil {
			return nil, poolErr
		}

		rt.closers = append(rt.closers, func(context.Context) error { pool.Close(); return nil })
		es, err = postgresengine.NewEventStoreFromPGXPool(pool, opts...)
	}

	if err != nil {
		return nil, err
	}

	if schemaErr := es.CreateSchema(ctx); schemaErr != nil {
		return nil, schemaErr
	}

	return es, nil
}

func (rt *runtime) openSQLite(ctx context.Context, s *settings, tel telemetry) (shell.EventStore, error) {
	db, err := config.SQLiteSQLX(ctx, s.sqlitePath)
	if err != nil {
		return nil, err
	}

	rt.closers = append(rt.closers, func(context.Context) error { return db.Close() })

	es, err := sqliteengine.NewEventStoreFromSQLX(db, sqliteOptions(tel)...)
	if err != nil {
		return nil, err
	}

	if schemaErr := es.CreateSchema(ctx); schemaErr != nil {
		return nil, schemaErr
	}

	return es, nil
}

// Close releases resources in reverse order of acquisition.
func (rt *runtime) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		errs = append(errs, rt.closers[i](ctx))
	}

	rt.closers = nil

	return errors.Join(errs...)
}

func memoryOptions(tel telemetry) []memengine.Option {
	opts := []memengine.Option{
		memengine.WithLogger(tel.logger),
		memengine.WithContextualLogger(tel.contextualLogger),
	}

	if tel.metrics != nil {
		opts = append(opts, memengine.WithMetrics(tel.metrics))
	}

	if tel.tracing != nil {
		opts = append(opts, memengine.WithTracing(tel.tracing))
	}

	return opts
}

func postgresOptions(tel telemetry) []postgresengine.Option {
	opts := []postgresengine.Option{
		postgresengine.WithLogger(tel.logger),
		postgresengine.WithContextualLogger(tel.contextualLogger),
	}

	if tel.metrics != nil {
		opts = append(opts, postgresengine.WithMetrics(tel.metrics))
	}

	if tel.tracing != nil {
		opts = append(opts, postgresengine.WithTracing(tel.tracing))
	}

	return opts
}

func sqliteOptions(tel telemetry) []sqliteengine.Option {
	opts := []sqliteengine.Option{
		sqliteengine.WithLogger(tel.logger),
		sqliteengine.WithContextualLogger(tel.contextualLogger),
	}

	if tel.metrics != nil {
		opts = append(opts, sqliteengine.WithMetrics(tel.metrics))
	}

	if tel.tracing != nil {
		opts = append(opts, sqliteengine.WithTracing(tel.tracing))
	}

	return opts
}
