package memberflux

const queryType = "MemberFlux"

// Query represents the input for the ledger entries of one member, by libraryId or username.
type Query struct {
	MemberID string
}

// BuildQuery creates a new Query.
func BuildQuery(memberID string) Query {
	return Query{MemberID: memberID}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
