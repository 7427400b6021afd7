package findmembers

import (
	"strings"
)

const (
	queryType = "FindMembers"

	// MatchLimit caps the result of a member search.
	MatchLimit = 100
)

// Query represents the input for searching members by libraryId or name.
type Query struct {
	Text string
}

// BuildQuery creates a new Query with the search text trimmed.
func BuildQuery(text string) Query {
	return Query{Text: strings.TrimSpace(text)}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
