package eventstore

import (
	"errors"
)

var (
	// ErrConcurrencyConflict is returned by Append when the dynamic event stream changed after it was queried.
	ErrConcurrencyConflict = errors.New("concurrency conflict: the event stream was modified")

	ErrEmptyEventsTableName        = errors.New("events table name must not be empty")
	ErrNilDatabaseConnection       = errors.New("database connection must not be nil")
	ErrQueryingEventsFailed        = errors.New("querying events failed")
	ErrAppendingEventFailed        = errors.New("appending events failed")
	ErrBuildingQueryFailed         = errors.New("building query failed")
	ErrScanningDBRowFailed         = errors.New("scanning db row failed")
	ErrBuildingStorableEventFailed = errors.New("building storable event failed")
	ErrGettingRowsAffectedFailed   = errors.New("getting rows affected failed")
)

// MaxSequenceNumberUint is the highest sequence number of a "dynamic event stream".
type MaxSequenceNumberUint = uint
