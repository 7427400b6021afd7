package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/shell/config"
)

const (
	storeMemory   = "memory"
	storePostgres = "postgres"
	storeSQLite   = "sqlite"

	adapterPGX  = "pgx"
	adapterSQL  = "sql"
	adapterSQLX = "sqlx"

	defaultSeed        = 42
	defaultServiceName = "circulation"
	serviceVersion     = "0.1.0"

	envPrefix = "CIRCULATION_"
)

var (
	errUnknownStore    = errors.New("unknown store")
	errUnknownAdapter  = errors.New("unknown postgres adapter")
	errUnknownLogLevel = errors.New("unknown log level")

	stores   = []string{storeMemory, storePostgres, storeSQLite}
	adapters = []string{adapterPGX, adapterSQL, adapterSQLX}
)

// settings are the persistent flags shared by all subcommands.
type settings struct {
	store            string
	adapter          string
	postgresDSN      string
	sqlitePath       string
	otlpEndpoint     string
	otlpInsecure     bool
	operator         string
	seed             int64
	logLevel         string
	skipBootstrap    bool
	enrollOnApproval bool
}

func (s *settings) bind(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&s.store, "store", env("STORE", storeMemory), "Event store: memory, postgres or sqlite")
	flags.StringVar(&s.adapter, "adapter", env("PG_ADAPTER", adapterPGX), "Postgres driver adapter: pgx, sql or sqlx")
	flags.StringVar(&s.postgresDSN, "postgres-dsn", env("POSTGRES_DSN", config.DefaultPostgresDSN), "Postgres connection string")
	flags.StringVar(&s.sqlitePath, "sqlite-path", env("SQLITE_PATH", config.DefaultSQLitePath), "SQLite database file")
	flags.StringVar(&s.otlpEndpoint, "otlp-endpoint", env("OTLP_ENDPOINT", ""), "OTLP gRPC endpoint, e.g. "+config.DefaultOTLPEndpoint+"; empty disables export")
	flags.BoolVar(&s.otlpInsecure, "otlp-insecure", true, "Export without TLS")
	flags.StringVar(&s.operator, "operator", env("OPERATOR", core.DefaultOperator), "Name recorded as handler of transactions")
	flags.Int64Var(&s.seed, "seed", defaultSeed, "Random seed for the generated seed data")
	flags.StringVar(&s.logLevel, "log-level", env("LOG_LEVEL", "warn"), "Log level: debug, info, warn or error")
	flags.BoolVar(&s.skipBootstrap, "skip-bootstrap", false, "Do not load the seed data before running the command")
	flags.BoolVar(&s.enrollOnApproval, "enroll-on-approval", true, "Register the applicant when an enrollment request is approved")
}

func (s *settings) validate() error {
	if !slices.Contains(stores, s.store) {
		return fmt.Errorf("%w: %q (want one of %s)", errUnknownStore, s.store, strings.Join(stores, ", "))
	}

	if s.store == storePostgres && !slices.Contains(adapters, s.adapter) {
		return fmt.Errorf("%w: %q (want one of %s)", errUnknownAdapter, s.adapter, strings.Join(adapters, ", "))
	}

	if _, err := s.level(); err != nil {
		return err
	}

	return nil
}

func (s *settings) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.logLevel)); err != nil {
		return level, fmt.Errorf("%w: %q", errUnknownLogLevel, s.logLevel)
	}

	return level, nil
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(envPrefix + key); ok && value != "" {
		return value
	}

	return fallback
}
