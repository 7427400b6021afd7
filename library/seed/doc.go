// Package seed generates the synthetic library the engine is bootstrapped with: the book
// catalog, physical copies for the first books, a student body, a queue of pending requests
// and the default policy rules.
//
// The generator is deterministic for a given *rand.Rand seed and clock, which keeps tests and
// demo runs reproducible. Only ISBNs, reliability scores and request timestamps are random.
package seed
