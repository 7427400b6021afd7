package core

import (
	"time"
)

const (
	RequestSubmittedEventType = "RequestSubmitted"
	RequestResolvedEventType  = "RequestResolved"
)

// RequestSubmitted queues a UserRequest. The variant data is flattened: Title and Author for
// acquisitions, ApplicantName and Department for enrollments.
type RequestSubmitted struct {
	RequestID     string
	RequestType   RequestType
	UserID        UserIDString
	Title         string
	Author        string
	ApplicantName string
	Department    string
	Priority      Priority
	OccurredAt    OccurredAt
}

// BuildRequestSubmitted records the request at its own timestamp.
func BuildRequestSubmitted(request UserRequest) RequestSubmitted {
	event := RequestSubmitted{
		RequestID:   request.ID,
		RequestType: request.Type,
		UserID:      request.UserID,
		Priority:    request.Priority,
		OccurredAt:  ToOccurredAt(request.Timestamp),
	}

	switch data := request.Data.(type) {
	case AcquisitionData:
		event.Title = data.Title
		event.Author = data.Author
	case EnrollmentData:
		event.ApplicantName = data.Name
		event.Department = data.Department
	}

	return event
}

func (e RequestSubmitted) IsEventType() string {
	return RequestSubmittedEventType
}

func (e RequestSubmitted) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// Request returns the submitted request in status pending.
func (e RequestSubmitted) Request() UserRequest {
	var data RequestData
	if e.RequestType == RequestUserEnrollment {
		data = EnrollmentData{Name: e.ApplicantName, Department: e.Department}
	} else {
		data = AcquisitionData{Title: e.Title, Author: e.Author}
	}

	return UserRequest{
		ID:        e.RequestID,
		Type:      e.RequestType,
		UserID:    e.UserID,
		Data:      data,
		Status:    RequestPending,
		Timestamp: e.OccurredAt,
		Priority:  e.Priority,
	}
}

// RequestResolved moves a pending request to approved or rejected. It is written at most once per request.
type RequestResolved struct {
	RequestID   string
	RequestType RequestType
	Decision    RequestStatus
	ResolvedBy  string
	OccurredAt  OccurredAt
}

func BuildRequestResolved(
	requestID string,
	requestType RequestType,
	decision RequestStatus,
	resolvedBy string,
	occurredAt time.Time,
) RequestResolved {

	return RequestResolved{
		RequestID:   requestID,
		RequestType: requestType,
		Decision:    decision,
		ResolvedBy:  resolvedBy,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e RequestResolved) IsEventType() string {
	return RequestResolvedEventType
}

func (e RequestResolved) HasOccurredAt() time.Time {
	return e.OccurredAt
}
