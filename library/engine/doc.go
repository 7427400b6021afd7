// Package engine is the circulation and inventory façade consumed by a presentation layer.
//
// An Engine owns one event store handle and a catalog. Every mutation goes through a command
// handler from library/features/command and every read through a query handler from
// library/features/query, each wrapped with the observability of library/shell/observable.
//
// Mutations on a copy (issue, return, renewal, status change) are serialized in-process per copy
// id and guarded across processes by optimistic concurrency on the copy's event stream.
// Queries are bounded by a timeout.
//
// Bootstrap loads seed data once; calling it again is a no-op.
package engine
