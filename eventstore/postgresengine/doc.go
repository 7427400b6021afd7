// Package postgresengine is a PostgreSQL eventstore engine.
//
// Events live in one table (default "circulation_events") with a BIGSERIAL sequence_number and
// JSONB payload/metadata. Predicates are rendered as JSONB containment (payload @> '{"k":"v"}'),
// which a GIN index with jsonb_path_ops can serve.
//
// Appends are a single INSERT ... SELECT guarded by a CTE that recomputes MAX(sequence_number)
// for the filter; when it no longer equals the expected value nothing is inserted and
// eventstore.ErrConcurrencyConflict is returned.
//
// Three connection types are supported: pgxpool.Pool, sql.DB (lib/pq driver) and sqlx.DB.
package postgresengine
