package core

// TransactionFrom returns the ledger entry an event represents, or false if it is not a ledger event.
func TransactionFrom(event DomainEvent) (Transaction, bool) {
	switch e := event.(type) {
	case BookCopyIssued:
		dueDate := e.DueDate

		return Transaction{
			ID:         e.TransactionID,
			UserID:     e.UserID,
			BookCopyID: e.CopyID,
			BookTitle:  e.BookTitle,
			Type:       TransactionIssue,
			Timestamp:  e.OccurredAt,
			DueDate:    &dueDate,
			Status:     TransactionActive,
			HandledBy:  e.HandledBy,
		}, true

	case BookCopyReturned:
		return Transaction{
			ID:         e.TransactionID,
			UserID:     e.UserID,
			BookCopyID: e.CopyID,
			BookTitle:  e.BookTitle,
			Type:       TransactionReturn,
			Timestamp:  e.OccurredAt,
			Status:     TransactionCompleted,
			HandledBy:  e.HandledBy,
		}, true

	case BookCopyRenewed:
		dueDate := e.DueDate

		return Transaction{
			ID:         e.TransactionID,
			UserID:     e.UserID,
			BookCopyID: e.CopyID,
			BookTitle:  e.BookTitle,
			Type:       TransactionRenewal,
			Timestamp:  e.OccurredAt,
			DueDate:    &dueDate,
			Status:     TransactionActive,
			HandledBy:  e.HandledBy,
		}, true
	}

	return Transaction{}, false
}

// TransactionsFrom returns the ledger entries among history, in arrival order.
func TransactionsFrom(history DomainEvents) []Transaction {
	transactions := make([]Transaction, 0)

	for _, event := range history {
		if transaction, ok := TransactionFrom(event); ok {
			transactions = append(transactions, transaction)
		}
	}

	return transactions
}

// TransactionIDOf returns the transaction id carried by a ledger event.
func TransactionIDOf(event DomainEvent) (TransactionIDString, bool) {
	switch e := event.(type) {
	case BookCopyIssued:
		return e.TransactionID, true
	case BookCopyReturned:
		return e.TransactionID, true
	case BookCopyRenewed:
		return e.TransactionID, true
	}

	return "", false
}
