// Package catalog holds the book catalog. It is validated once at construction and never
// changes afterwards, so it needs no locking. Copies are not part of the catalog: their state
// is projected from copy events.
package catalog
