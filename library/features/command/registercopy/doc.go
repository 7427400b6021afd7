// Package registercopy implements the Register Copy use case ("Inject Artifact").
//
// A new physical copy of a catalog book enters the inventory. Its accession number must be unused
// and its status must agree with its holder: issued copies name one, available copies don't.
// Seeding registers copies in bulk through the same event.
package registercopy
