// Package changecopystatus implements the exception paths of the copy status machine.
//
// Available or issued copies can be marked damaged, missing or archived; damaged and missing
// copies can be archived. Asking for the status a copy already has is a no-op. These transitions
// write no ledger entry.
package changecopystatus
