// Package sqliteengine is an eventstore engine on a single SQLite file, for local runs and
// the CLI. It uses github.com/mattn/go-sqlite3 and shares statement rendering with postgresengine.
//
// Payload predicates are rendered as json_extract(payload, '$."Key"') = 'value'. Appends use the
// same CTE guard as the PostgreSQL engine and are additionally serialized per EventStore, since
// SQLite allows one writer at a time anyway.
package sqliteengine
