package requestdetails

const queryType = "RequestDetails"

// Query represents the input for one request by id.
type Query struct {
	RequestID string
}

// BuildQuery creates a new Query.
func BuildQuery(requestID string) Query {
	return Query{RequestID: requestID}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
