// Package findmembers implements the member search: registered members whose libraryId or name
// contain a search text, case-insensitively.
package findmembers
