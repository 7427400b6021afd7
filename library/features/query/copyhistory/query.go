package copyhistory

import (
	"github.com/aegislib/circulation/library/core"
)

const queryType = "CopyHistory"

// Query represents the input for the ledger entries of one copy.
type Query struct {
	CopyID core.CopyIDString
}

// BuildQuery creates a new Query.
func BuildQuery(copyID core.CopyIDString) Query {
	return Query{CopyID: copyID}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
