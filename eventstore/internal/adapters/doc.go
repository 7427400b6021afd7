// Package adapters lets the SQL engines run on pgxpool.Pool, sql.DB or sqlx.DB
// through one small DBAdapter interface.
package adapters
