package bookavailability

import (
	"github.com/aegislib/circulation/library/core"
)

const queryType = "BookAvailability"

// Query represents the input for the availability of one book.
type Query struct {
	BookID core.BookIDString
}

// BuildQuery creates a new Query.
func BuildQuery(bookID core.BookIDString) Query {
	return Query{BookID: bookID}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
