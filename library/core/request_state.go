package core

// RequestsFrom folds submissions and resolutions into the current requests, in arrival order.
// Resolutions of unknown requests are ignored.
func RequestsFrom(history DomainEvents) []UserRequest {
	requests := make([]UserRequest, 0)
	index := make(map[string]int)

	for _, event := range history {
		switch e := event.(type) {
		case RequestSubmitted:
			if _, exists := index[e.RequestID]; exists {
				continue
			}
			index[e.RequestID] = len(requests)
			requests = append(requests, e.Request())

		case RequestResolved:
			if i, exists := index[e.RequestID]; exists {
				requests[i].Status = e.Decision
			}
		}
	}

	return requests
}
