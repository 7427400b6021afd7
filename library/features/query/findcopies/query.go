package findcopies

import (
	"strings"
)

const (
	queryType = "FindCopies"

	// BrowseLimit caps the result of a blank search.
	BrowseLimit = 50

	// MatchLimit caps the result of a non-blank search.
	MatchLimit = 100
)

// Query represents the input for searching copies by id or title.
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

// Limit is the maximum number of copies the query returns.
func (q Query) Limit() int {
	if q.Text == "" {
		return BrowseLimit
	}

	return MatchLimit
}
