package engine

import (
	"context"
	"time"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/features/query/bookavailability"
	"github.com/aegislib/circulation/library/features/query/copydetails"
	"github.com/aegislib/circulation/library/features/query/copyhistory"
	"github.com/aegislib/circulation/library/features/query/findcopies"
	"github.com/aegislib/circulation/library/features/query/findmembers"
	"github.com/aegislib/circulation/library/features/query/memberflux"
	"github.com/aegislib/circulation/library/features/query/overdueloans"
	"github.com/aegislib/circulation/library/features/query/pendingrequests"
	"github.com/aegislib/circulation/library/features/query/policyrules"
	"github.com/aegislib/circulation/library/features/query/requestdetails"
	"github.com/aegislib/circulation/library/features/query/transactionledger"
)

// FindCopiesByQuery returns the first 50 copies for a blank text, otherwise up to 100 copies
// whose id or book title contain text.
func (e *Engine) FindCopiesByQuery(ctx context.Context, text string) (findcopies.Copies, error) {
	ctx, cancel := e.withQueryTimeout(ctx)
	defer cancel()

	return e.handlers.findCopies.Handle(ctx, findcopies.BuildQuery(text))
}

// FindMemberByQuery returns the members whose libraryId or name contain text.
func (e *Engine) FindMemberByQuery(ctx context.Context, text string) (findmembers.Members, error) {
	ctx, cancel := e.withQueryTimeout(ctx)
	defer cancel()

	return e.handlers.findMembers.Handle(ctx, findmembers.BuildQuery(text))
}

// HistoryForCopy returns the ledger entries of one copy.
func (e *Engine) HistoryForCopy(ctx context.Context, copyID core.CopyIDString) (copyhistory.CopyHistory, error) {
	ctx, cancel := e.withQueryTimeout(ctx)
	defer cancel()

	return e.handlers.copyHistory.Handle(ctx, copyhistory.BuildQuery(copyID))
}

// FluxForMember returns the ledger entries of a member, by libraryId or username.
func (e *Engine) FluxForMember(ctx context.Context, memberID string) (memberflux.MemberFlux, error) {
	ctx, cancel := e.withQueryTimeout(ctx)
	defer cancel()

	return e.handlers.memberFlux.Handle(ctx, memberflux.BuildQuery(memberID))
}

// PendingRequestsByType returns the unresolved requests of one type, oldest first.
func (e *Engine) PendingRequestsByType(ctx context.Context, requestType core.RequestType) (pendingrequests.PendingRequests, error) {
	ctx, cancel := e.withQueryTimeout(ctx)
	defer cancel()

	return e.handlers.pendingRequests.Handle(ctx, pendingrequests.BuildQuery(requestType))
}

// Request returns one request with its current status.
func (e *Engine) Request(ctx context.Context, requestID string) (core.UserRequest, error) {
	ctx, cancel := e.withQueryTimeout(ctx)
	defer cancel()

	return e.handlers.requestDetails.Handle(ctx, requestdetails.BuildQuery(requestID))
}

// PolicyRules returns the current rule set.
func (e *Engine) PolicyRules(ctx context.Context) (policyrules.RuleSet, error) {
	ctx, cancel := e.withQueryTimeout(ctx)
	defer cancel()

	return e.handlers.policyRules.Handle(ctx, policyrules.BuildQuery())
}

// Ledger returns every transaction in arrival order.
func (e *Engine) Ledger(ctx context.Context) (transactionledger.Ledger, error) {
	ctx, cancel := e.withQueryTimeout(ctx)
	defer cancel()

	return e.handlers.ledger.Handle(ctx, transactionledger.BuildQuery())
}

// OverdueLoans returns the loans past their due date at now.
func (e *Engine) OverdueLoans(ctx context.Context, now time.Time) (overdueloans.OverdueLoans, error) {
	ctx, cancel := e.withQueryTimeout(ctx)
	defer cancel()

	return e.handlers.overdueLoans.Handle(ctx, overdueloans.BuildQuery(now))
}

// BookAvailability recomputes the copy counts of one book.
func (e *Engine) BookAvailability(ctx context.Context, bookID core.BookIDString) (bookavailability.Availability, error) {
	ctx, cancel := e.withQueryTimeout(ctx)
	defer cancel()

	return e.handlers.bookAvailability.Handle(ctx, bookavailability.BuildQuery(bookID))
}

// Copy returns one copy with its current status and holder.
func (e *Engine) Copy(ctx context.Context, copyID core.CopyIDString) (core.BookCopy, error) {
	ctx, cancel := e.withQueryTimeout(ctx)
	defer cancel()

	return e.handlers.copyDetails.Handle(ctx, copydetails.BuildQuery(copyID))
}

// Book returns the catalog record of a book.
func (e *Engine) Book(bookID core.BookIDString) (core.Book, error) {
	book, found := e.catalog.Book(bookID)
	if !found {
		return core.Book{}, core.NewNotFoundError(core.EntityBook, bookID)
	}

	return book, nil
}
