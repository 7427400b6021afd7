package engine

import (
	"context"
	"errors"
	"time"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/features/command/addrule"
	"github.com/aegislib/circulation/library/features/command/changecopystatus"
	"github.com/aegislib/circulation/library/features/command/issuecopy"
	"github.com/aegislib/circulation/library/features/command/registercopy"
	"github.com/aegislib/circulation/library/features/command/registermember"
	"github.com/aegislib/circulation/library/features/command/removerule"
	"github.com/aegislib/circulation/library/features/command/renewcopy"
	"github.com/aegislib/circulation/library/features/command/resolverequest"
	"github.com/aegislib/circulation/library/features/command/returncopy"
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
	"github.com/aegislib/circulation/library/shell"
	"github.com/aegislib/circulation/library/shell/observable"
)

// ErrWiringHandlersFailed is returned by New when a handler cannot be constructed.
var ErrWiringHandlersFailed = errors.New("wiring handlers failed")

// Engine is the circulation and inventory façade. It is safe for concurrent use.
type Engine struct {
	store   shell.EventStore
	catalog core.CatalogLookup

	clock        func() time.Time
	operator     string
	queryTimeout time.Duration
	chunkSize    int
	random       core.RandomSource
	retryOptions []shell.RetryOption

	approvalHandlers []ApprovalHandler

	logger           shell.Logger
	contextualLogger shell.ContextualLogger
	metrics          shell.MetricsCollector
	tracing          shell.TracingCollector

	copyLocks *shell.KeyedMutex
	handlers  handlers
}

type handlers struct {
	issueCopy        *observable.CommandWrapper[issuecopy.Command]
	returnCopy       *observable.CommandWrapper[returncopy.Command]
	renewCopy        *observable.CommandWrapper[renewcopy.Command]
	changeCopyStatus *observable.CommandWrapper[changecopystatus.Command]
	registerCopy     *observable.CommandWrapper[registercopy.Command]
	registerMember   *observable.CommandWrapper[registermember.Command]
	resolveRequest   *observable.CommandWrapper[resolverequest.Command]
	addRule          *observable.CommandWrapper[addrule.Command]
	removeRule       *observable.CommandWrapper[removerule.Command]

	findCopies       *observable.QueryWrapper[findcopies.Query, findcopies.Copies]
	findMembers      *observable.QueryWrapper[findmembers.Query, findmembers.Members]
	copyDetails      *observable.QueryWrapper[copydetails.Query, core.BookCopy]
	copyHistory      *observable.QueryWrapper[copyhistory.Query, copyhistory.CopyHistory]
	memberFlux       *observable.QueryWrapper[memberflux.Query, memberflux.MemberFlux]
	pendingRequests  *observable.QueryWrapper[pendingrequests.Query, pendingrequests.PendingRequests]
	requestDetails   *observable.QueryWrapper[requestdetails.Query, core.UserRequest]
	policyRules      *observable.QueryWrapper[policyrules.Query, policyrules.RuleSet]
	ledger           *observable.QueryWrapper[transactionledger.Query, transactionledger.Ledger]
	overdueLoans     *observable.QueryWrapper[overdueloans.Query, overdueloans.OverdueLoans]
	bookAvailability *observable.QueryWrapper[bookavailability.Query, bookavailability.Availability]
}

// New creates an Engine over store and catalog and wires all handlers.
func New(store shell.EventStore, catalog core.CatalogLookup, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, shell.ErrNilEventStore
	}

	if catalog == nil {
		return nil, shell.ErrNilCatalog
	}

	e := &Engine{
		store:        store,
		catalog:      catalog,
		clock:        time.Now,
		operator:     core.DefaultOperator,
		queryTimeout: defaultQueryTimeout,
		chunkSize:    defaultChunkSize,
		random:       shell.NewLockedRand(time.Now().UnixNano()),
		copyLocks:    shell.NewKeyedMutex(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if err := e.wireCommandHandlers(); err != nil {
		return nil, errors.Join(ErrWiringHandlersFailed, err)
	}

	if err := e.wireQueryHandlers(); err != nil {
		return nil, errors.Join(ErrWiringHandlersFailed, err)
	}

	return e, nil
}

func (e *Engine) wireCommandHandlers() error {
	issue, err := issuecopy.NewCommandHandler(e.store, e.catalog,
		issuecopy.WithRandomSource(e.random),
		issuecopy.WithRetryOptions(e.retryOptions...))
	if err != nil {
		return err
	}
	if e.handlers.issueCopy, err = wrapCommand[issuecopy.Command](e, issue); err != nil {
		return err
	}

	ret, err := returncopy.NewCommandHandler(e.store, e.catalog,
		returncopy.WithRandomSource(e.random),
		returncopy.WithRetryOptions(e.retryOptions...))
	if err != nil {
		return err
	}
	if e.handlers.returnCopy, err = wrapCommand[returncopy.Command](e, ret); err != nil {
		return err
	}

	renew, err := renewcopy.NewCommandHandler(e.store, e.catalog,
		renewcopy.WithRandomSource(e.random),
		renewcopy.WithRetryOptions(e.retryOptions...))
	if err != nil {
		return err
	}
	if e.handlers.renewCopy, err = wrapCommand[renewcopy.Command](e, renew); err != nil {
		return err
	}

	changeStatus, err := changecopystatus.NewCommandHandler(e.store,
		changecopystatus.WithRetryOptions(e.retryOptions...))
	if err != nil {
		return err
	}
	if e.handlers.changeCopyStatus, err = wrapCommand[changecopystatus.Command](e, changeStatus); err != nil {
		return err
	}

	registerCopy, err := registercopy.NewCommandHandler(e.store, e.catalog,
		registercopy.WithRetryOptions(e.retryOptions...))
	if err != nil {
		return err
	}
	if e.handlers.registerCopy, err = wrapCommand[registercopy.Command](e, registerCopy); err != nil {
		return err
	}

	registerMember, err := registermember.NewCommandHandler(e.store,
		registermember.WithRetryOptions(e.retryOptions...))
	if err != nil {
		return err
	}
	if e.handlers.registerMember, err = wrapCommand[registermember.Command](e, registerMember); err != nil {
		return err
	}

	resolve, err := resolverequest.NewCommandHandler(e.store,
		resolverequest.WithRetryOptions(e.retryOptions...))
	if err != nil {
		return err
	}
	if e.handlers.resolveRequest, err = wrapCommand[resolverequest.Command](e, resolve); err != nil {
		return err
	}

	add, err := addrule.NewCommandHandler(e.store,
		addrule.WithRetryOptions(e.retryOptions...))
	if err != nil {
		return err
	}
	if e.handlers.addRule, err = wrapCommand[addrule.Command](e, add); err != nil {
		return err
	}

	remove, err := removerule.NewCommandHandler(e.store,
		removerule.WithRetryOptions(e.retryOptions...))
	if err != nil {
		return err
	}
	e.handlers.removeRule, err = wrapCommand[removerule.Command](e, remove)

	return err
}

func (e *Engine) wireQueryHandlers() error {
	findCopies, err := findcopies.NewQueryHandler(e.store, e.catalog)
	if err != nil {
		return err
	}
	if e.handlers.findCopies, err = wrapQuery[findcopies.Query, findcopies.Copies](e, findCopies); err != nil {
		return err
	}

	findMembers, err := findmembers.NewQueryHandler(e.store)
	if err != nil {
		return err
	}
	if e.handlers.findMembers, err = wrapQuery[findmembers.Query, findmembers.Members](e, findMembers); err != nil {
		return err
	}

	details, err := copydetails.NewQueryHandler(e.store)
	if err != nil {
		return err
	}
	if e.handlers.copyDetails, err = wrapQuery[copydetails.Query, core.BookCopy](e, details); err != nil {
		return err
	}

	history, err := copyhistory.NewQueryHandler(e.store)
	if err != nil {
		return err
	}
	if e.handlers.copyHistory, err = wrapQuery[copyhistory.Query, copyhistory.CopyHistory](e, history); err != nil {
		return err
	}

	flux, err := memberflux.NewQueryHandler(e.store)
	if err != nil {
		return err
	}
	if e.handlers.memberFlux, err = wrapQuery[memberflux.Query, memberflux.MemberFlux](e, flux); err != nil {
		return err
	}

	pending, err := pendingrequests.NewQueryHandler(e.store)
	if err != nil {
		return err
	}
	if e.handlers.pendingRequests, err = wrapQuery[pendingrequests.Query, pendingrequests.PendingRequests](e, pending); err != nil {
		return err
	}

	request, err := requestdetails.NewQueryHandler(e.store)
	if err != nil {
		return err
	}
	if e.handlers.requestDetails, err = wrapQuery[requestdetails.Query, core.UserRequest](e, request); err != nil {
		return err
	}

	rules, err := policyrules.NewQueryHandler(e.store)
	if err != nil {
		return err
	}
	if e.handlers.policyRules, err = wrapQuery[policyrules.Query, policyrules.RuleSet](e, rules); err != nil {
		return err
	}

	ledger, err := transactionledger.NewQueryHandler(e.store)
	if err != nil {
		return err
	}
	if e.handlers.ledger, err = wrapQuery[transactionledger.Query, transactionledger.Ledger](e, ledger); err != nil {
		return err
	}

	overdue, err := overdueloans.NewQueryHandler(e.store)
	if err != nil {
		return err
	}
	if e.handlers.overdueLoans, err = wrapQuery[overdueloans.Query, overdueloans.OverdueLoans](e, overdue); err != nil {
		return err
	}

	availability, err := bookavailability.NewQueryHandler(e.store, e.catalog)
	if err != nil {
		return err
	}
	e.handlers.bookAvailability, err = wrapQuery[bookavailability.Query, bookavailability.Availability](e, availability)

	return err
}

func wrapCommand[C shell.Command](e *Engine, handler shell.CoreCommandHandler[C]) (*observable.CommandWrapper[C], error) {
	return observable.NewCommandWrapper(handler,
		observable.WithCommandMetrics[C](e.metrics),
		observable.WithCommandTracing[C](e.tracing),
		observable.WithCommandContextualLogging[C](e.contextualLogger),
		observable.WithCommandLogging[C](e.logger),
	)
}

func wrapQuery[Q shell.Query, R any](e *Engine, handler shell.CoreQueryHandler[Q, R]) (*observable.QueryWrapper[Q, R], error) {
	return observable.NewQueryWrapper(handler,
		observable.WithQueryMetrics[Q, R](e.metrics),
		observable.WithQueryTracing[Q, R](e.tracing),
		observable.WithQueryContextualLogging[Q, R](e.contextualLogger),
		observable.WithQueryLogging[Q, R](e.logger),
	)
}

func (e *Engine) now() time.Time {
	return e.clock()
}

func (e *Engine) withQueryTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, e.queryTimeout)
}
