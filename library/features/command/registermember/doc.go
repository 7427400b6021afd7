// Package registermember implements member enrollment into the Member Registry.
//
// Both libraryId and username are unique keys. The caller supplies them, either generated
// (register) or explicit (enroll); a duplicate surfaces as a ConflictError so a generating caller
// can draw new identifiers and try again.
package registermember
