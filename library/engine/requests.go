package engine

import (
	"context"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/features/command/resolverequest"
	"github.com/aegislib/circulation/library/features/query/requestdetails"
)

const (
	logMsgApprovalHandlerFailed = "approval handler failed"
	logMsgResolvedRequestUnread = "resolved request could not be read back"
	logAttrRequestID            = "request_id"
	logAttrRequestType          = "request_type"
	logAttrError                = "error"
)

// ApprovalHandler reacts to an approved request, e.g. by acquiring a title or enrolling a member.
type ApprovalHandler interface {
	OnApproved(ctx context.Context, request core.UserRequest) error
}

// ApprovalHandlerFunc adapts a function to ApprovalHandler.
type ApprovalHandlerFunc func(ctx context.Context, request core.UserRequest) error

func (f ApprovalHandlerFunc) OnApproved(ctx context.Context, request core.UserRequest) error {
	return f(ctx, request)
}

// EnrollOnApproval registers the applicant of an approved enrollment request through e.Register.
// Other request types are ignored.
func EnrollOnApproval(e *Engine) ApprovalHandler {
	return ApprovalHandlerFunc(func(ctx context.Context, request core.UserRequest) error {
		data, ok := request.Data.(core.EnrollmentData)
		if !ok {
			return nil
		}

		_, err := e.Register(ctx, data.Name, data.Department)

		return err
	})
}

// ResolveRequest moves a pending request to approved or rejected and returns it.
//
// Approved requests are handed to every ApprovalHandler. A failing handler is logged and does not
// undo the resolution.
func (e *Engine) ResolveRequest(ctx context.Context, requestID string, decision core.RequestStatus) (core.UserRequest, error) {
	if _, err := e.handlers.resolveRequest.Handle(ctx, resolverequest.BuildCommand(requestID, decision, e.operator, e.now())); err != nil {
		return core.UserRequest{}, err
	}

	request, err := e.handlers.requestDetails.Handle(ctx, requestdetails.BuildQuery(requestID))
	if err != nil {
		e.logError(ctx, logMsgResolvedRequestUnread, logAttrRequestID, requestID, logAttrError, err.Error())

		return core.UserRequest{ID: requestID, Status: decision}, nil
	}

	// The resolution is committed; a lagging read must not show the request as pending.
	request.Status = decision

	if decision == core.RequestApproved {
		e.dispatchApproval(ctx, request)
	}

	return request, nil
}

func (e *Engine) dispatchApproval(ctx context.Context, request core.UserRequest) {
	for _, handler := range e.approvalHandlers {
		if err := handler.OnApproved(ctx, request); err != nil {
			e.logError(ctx, logMsgApprovalHandlerFailed,
				logAttrRequestID, request.ID,
				logAttrRequestType, string(request.Type),
				logAttrError, err.Error(),
			)
		}
	}
}

func (e *Engine) logError(ctx context.Context, msg string, args ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.ErrorContext(ctx, msg, args...)
	} else if e.logger != nil {
		e.logger.Error(msg, args...)
	}
}
