// Package memberflux implements the "active flux" of one member: the ledger entries whose holder
// is the member's libraryId or username.
//
// The member is looked up first so that entries recorded under either identity are found. An
// identity that matches no registered member is used as is.
package memberflux
