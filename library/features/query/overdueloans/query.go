package overdueloans

import (
	"time"
)

const queryType = "OverdueLoans"

// Query represents the input for loans overdue at Now.
type Query struct {
	Now time.Time
}

// BuildQuery creates a new Query.
func BuildQuery(now time.Time) Query {
	return Query{Now: now}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
