// Package findcopies implements the artifact search: copies whose id or book title contain a
// search text, case-insensitively.
//
// Copies are folded from their lifecycle events; titles come from the catalog. A blank text
// browses the first copies in registration order.
package findcopies
