// Package bookavailability recomputes the copy counts of one book from the tracked copies and
// reports them next to the counts the catalog declares.
//
// The catalog counts are seeded figures and are never updated by circulation. The recomputed
// counts are what the inventory actually holds.
package bookavailability
