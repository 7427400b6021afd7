// Package observable provides wrappers that instrument command and query handlers with
// metrics, tracing and logging while keeping the handlers themselves pure.
//
// The wrappers are applied externally at wiring time, not hidden inside factory functions:
//
//	coreHandler := issuecopy.NewCommandHandler(eventStore, bookCatalog)
//
//	observableHandler, err := observable.NewCommandWrapper(
//		coreHandler,
//		observable.WithCommandMetrics[issuecopy.Command](metricsCollector),
//		observable.WithCommandTracing[issuecopy.Command](tracingCollector),
//		observable.WithCommandContextualLogging[issuecopy.Command](contextualLogger),
//	)
//
// Commands refused by a business rule (unknown copy, copy not available, missing field,
// duplicate id) are recorded with status "rejected" and logged at warn level; only
// infrastructure failures are logged as errors.
package observable
