package core

// CatalogLookup is the read side of the book catalog needed by circulation decisions.
// The catalog is the owner of Book records; copies and ledger entries only hold BookIDs.
type CatalogLookup interface {
	Book(id BookIDString) (Book, bool)
	TitleOf(id BookIDString) string
}
