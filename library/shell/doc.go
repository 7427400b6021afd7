// Package shell is the imperative shell around the circulation domain: it converts between
// domain events and storable events, retries command handlers on concurrency conflicts,
// serializes mutations per copy, and provides the observability helpers that the
// observable wrappers build on.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
