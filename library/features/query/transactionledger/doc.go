// Package transactionledger implements the full circulation ledger: every issue, return and
// renewal entry in the order it was recorded.
package transactionledger
