// Package memengine is the in-process eventstore engine.
//
// It keeps the event log in a slice guarded by a sync.RWMutex. Queries run concurrently,
// appends are serialized, and the expected-sequence check plus the write happen under the
// same lock, which makes every Append atomic. Nothing is persisted.
package memengine
