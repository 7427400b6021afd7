// Package fixtures builds catalog records, copies and event histories for library tests,
// and writes them into an in-memory event store.
package fixtures
