// Package config builds the connections and telemetry providers the engine runs on:
// pgxpool, database/sql and sqlx pools for PostgreSQL, a sqlx handle for SQLite, and
// OpenTelemetry tracer and meter providers exporting via OTLP gRPC.
//
// This package is part of the shell (infrastructure) layer.
package config
