// Package returncopy implements the Return Copy use case.
//
// An issued copy comes back: it becomes available again, its holder is cleared, and a "return"
// ledger entry is written for the prior holder in the same BookCopyReturned event. A copy that
// is not issued cannot be returned.
package returncopy
