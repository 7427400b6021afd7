package shell

import (
	"errors"
)

var (
	// ErrNilEventStore is returned when a handler is built without an event store.
	ErrNilEventStore = errors.New("event store must not be nil")

	// ErrNilCatalog is returned when a handler that snapshots book data is built without a catalog.
	ErrNilCatalog = errors.New("catalog must not be nil")

	// ErrNilRandomSource is returned when a handler that generates identifiers gets a nil random source.
	ErrNilRandomSource = errors.New("random source must not be nil")
)
