package engine

import (
	"context"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/features/command/changecopystatus"
	"github.com/aegislib/circulation/library/features/command/issuecopy"
	"github.com/aegislib/circulation/library/features/command/registercopy"
	"github.com/aegislib/circulation/library/features/command/renewcopy"
	"github.com/aegislib/circulation/library/features/command/returncopy"
	"github.com/aegislib/circulation/library/shell"
)

// Issue lends an available copy to userID and returns the "issue" ledger entry.
// A copy that is not available is an InvalidStateError and leaves the ledger unchanged.
func (e *Engine) Issue(ctx context.Context, copyID core.CopyIDString, userID core.UserIDString) (core.Transaction, error) {
	unlock := e.copyLocks.Lock(copyID)
	defer unlock()

	result, err := e.handlers.issueCopy.Handle(ctx, issuecopy.BuildCommand(copyID, userID, e.operator, e.now()))
	if err != nil {
		return core.Transaction{}, err
	}

	return transactionOf(result), nil
}

// Return takes an issued copy back and returns the "return" ledger entry held by the prior holder.
// A copy that is not issued is an InvalidStateError and leaves the ledger unchanged.
func (e *Engine) Return(ctx context.Context, copyID core.CopyIDString) (core.Transaction, error) {
	unlock := e.copyLocks.Lock(copyID)
	defer unlock()

	result, err := e.handlers.returnCopy.Handle(ctx, returncopy.BuildCommand(copyID, e.operator, e.now()))
	if err != nil {
		return core.Transaction{}, err
	}

	return transactionOf(result), nil
}

// Renew extends the loan of an issued copy by one loan period and returns the "renewal" entry.
func (e *Engine) Renew(ctx context.Context, copyID core.CopyIDString) (core.Transaction, error) {
	unlock := e.copyLocks.Lock(copyID)
	defer unlock()

	result, err := e.handlers.renewCopy.Handle(ctx, renewcopy.BuildCommand(copyID, e.operator, e.now()))
	if err != nil {
		return core.Transaction{}, err
	}

	return transactionOf(result), nil
}

// ChangeCopyStatus moves a copy along an exception path, e.g. available to damaged.
// Moving a copy to the status it already has changes nothing.
func (e *Engine) ChangeCopyStatus(
	ctx context.Context,
	copyID core.CopyIDString,
	status core.CopyStatus,
	reason string,
) error {

	unlock := e.copyLocks.Lock(copyID)
	defer unlock()

	_, err := e.handlers.changeCopyStatus.Handle(ctx, changecopystatus.BuildCommand(copyID, status, reason, e.operator, e.now()))

	return err
}

// RegisterCopy adds a physical copy of a catalog book to the inventory.
func (e *Engine) RegisterCopy(ctx context.Context, bookCopy core.BookCopy) (core.BookCopy, error) {
	unlock := e.copyLocks.Lock(bookCopy.ID)
	defer unlock()

	result, err := e.handlers.registerCopy.Handle(ctx, registercopy.BuildCommand(bookCopy, e.now()))
	if err != nil {
		return core.BookCopy{}, err
	}

	registered, _ := result.Event.(core.BookCopyRegistered)

	return registered.Copy(), nil
}

func transactionOf(result shell.HandlerResult) core.Transaction {
	transaction, _ := core.TransactionFrom(result.Event)

	return transaction
}
