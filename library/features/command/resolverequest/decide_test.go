package resolverequest_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/features/command/resolverequest"
	"github.com/aegislib/circulation/testutil/fixtures"
)

func Test_Decide_Success(t *testing.T) {
	for _, decision := range []core.RequestStatus{core.RequestApproved, core.RequestRejected} {
		t.Run(string(decision), func(t *testing.T) {
			// act
			result := resolverequest.Decide(
				givenSubmitted("REQ-1"),
				resolverequest.BuildCommand("REQ-1", decision, "", fixtures.FakeClock),
			)

			// assert
			require.True(t, result.HasEventToAppend())
			resolved, ok := result.Event.(core.RequestResolved)
			require.True(t, ok)
			assert.Equal(t, decision, resolved.Decision)
			assert.Equal(t, core.RequestUserEnrollment, resolved.RequestType)
			assert.Equal(t, core.DefaultOperator, resolved.ResolvedBy)
		})
	}
}

func Test_Decide_Error_WhenAlreadyResolved(t *testing.T) {
	// arrange
	history := append(
		givenSubmitted("REQ-1"),
		core.BuildRequestResolved("REQ-1", core.RequestUserEnrollment, core.RequestApproved, core.DefaultOperator, fixtures.FakeClock),
	)

	// act
	result := resolverequest.Decide(history, resolverequest.BuildCommand("REQ-1", core.RequestRejected, "", fixtures.FakeClock))

	// assert
	var stateErr core.InvalidStateError
	require.ErrorAs(t, result.HasError(), &stateErr)
	assert.Equal(t, "request already approved", stateErr.Reason)
}

func Test_Decide_Error(t *testing.T) {
	testCases := []struct {
		name      string
		requestID string
		decision  core.RequestStatus
		sentinel  error
	}{
		{name: "blank request id", requestID: "", decision: core.RequestApproved, sentinel: core.ErrValidation},
		{name: "pending is no decision", requestID: "REQ-1", decision: core.RequestPending, sentinel: core.ErrValidation},
		{name: "unknown decision", requestID: "REQ-1", decision: "maybe", sentinel: core.ErrValidation},
		{name: "unknown request", requestID: "REQ-2", decision: core.RequestApproved, sentinel: core.ErrNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := resolverequest.Decide(
				givenSubmitted("REQ-1"),
				resolverequest.BuildCommand(tc.requestID, tc.decision, "", fixtures.FakeClock),
			)

			// assert
			assert.ErrorIs(t, result.HasError(), tc.sentinel)
		})
	}
}

func givenSubmitted(requestID string) core.DomainEvents {
	return core.DomainEvents{
		core.BuildRequestSubmitted(core.UserRequest{
			ID:        requestID,
			Type:      core.RequestUserEnrollment,
			Data:      core.EnrollmentData{Name: "Applicant 1", Department: "Robotics"},
			Status:    core.RequestPending,
			Timestamp: fixtures.FakeClock.Add(-48 * time.Hour),
			Priority:  core.PriorityMedium,
		}),
	}
}
