package transactionledger

const queryType = "TransactionLedger"

// Query represents the input for the full ledger. It carries no parameters.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
