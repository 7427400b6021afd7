package copydetails

import (
	"github.com/aegislib/circulation/library/core"
)

const queryType = "CopyDetails"

// Query represents the input for one copy by id.
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
