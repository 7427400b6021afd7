// Package eventstore holds the storage-agnostic building blocks of the circulation event log.
//
// Every state change of the library (a copy issued, a member registered, a rule added) is
// recorded as a StorableEvent. Consumers read a "dynamic event stream" by querying with a
// Filter and write to it with Append, passing the same Filter and the highest sequence number
// they observed. Engines reject the append with ErrConcurrencyConflict when another writer
// touched the same stream in between.
//
// Filters combine event types and JSON payload predicates:
//
//	filter := eventstore.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf("BookCopyIssued", "BookCopyReturned").
//		AndAnyPredicateOf(eventstore.P("CopyID", "ACC-10001")).
//		Finalize()
//
//	events, maxSeq, err := store.Query(ctx, filter)
//	// decide ...
//	err = store.Append(ctx, filter, maxSeq, newEvent)
//
// Engines live in sub-packages: memengine (process memory, the default),
// postgresengine and sqliteengine.
package eventstore
