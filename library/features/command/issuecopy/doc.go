// Package issuecopy implements the Issue Copy use case of the circulation desk.
//
// An available copy is lent to a member. The state change and the "issue" ledger entry are the
// same BookCopyIssued event, so they become visible together or not at all. The due date is
// fourteen days after the issue, and the book title is snapshotted from the catalog.
//
// The consistency boundary covers the copy's lifecycle events and any ledger event carrying the
// candidate transaction ID, so a concurrent issue of the same copy and a transaction ID collision
// are both detected by the append. Colliding IDs are regenerated a bounded number of times.
package issuecopy
