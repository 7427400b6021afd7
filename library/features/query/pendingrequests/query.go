package pendingrequests

import (
	"fmt"

	"github.com/aegislib/circulation/library/core"
)

const queryType = "PendingRequests"

// Query represents the input for the pending requests of one RequestType.
type Query struct {
	RequestType core.RequestType
}

// BuildQuery creates a new Query.
func BuildQuery(requestType core.RequestType) Query {
	return Query{RequestType: requestType}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// Validate rejects request types the queue does not know.
func (q Query) Validate() error {
	if !q.RequestType.IsValid() {
		return core.NewInvalidValueError(fmt.Sprintf("unknown request type %q", q.RequestType))
	}

	return nil
}
