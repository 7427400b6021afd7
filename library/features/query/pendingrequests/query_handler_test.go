package pendingrequests_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/features/query/pendingrequests"
	"github.com/aegislib/circulation/testutil/fixtures"
)

func Test_QueryHandler_Handle_ReturnsPendingRequestsOfOneType(t *testing.T) {
	// arrange
	es := fixtures.NewEventStore(t)
	at := fixtures.FakeClock
	fixtures.GivenEvents(t, es,
		core.BuildRequestSubmitted(givenAcquisition("REQ-1", at)),
		core.BuildRequestSubmitted(givenEnrollment("REQ-2", at.Add(time.Minute))),
		core.BuildRequestSubmitted(givenAcquisition("REQ-3", at.Add(2*time.Minute))),
		core.BuildRequestSubmitted(givenAcquisition("REQ-4", at.Add(3*time.Minute))),
		core.BuildRequestResolved("REQ-3", core.RequestBookAcquisition, core.RequestRejected, "Admin", at.Add(time.Hour)),
	)
	handler, err := pendingrequests.NewQueryHandler(es)
	require.NoError(t, err)

	// act
	result, err := handler.Handle(context.Background(), pendingrequests.BuildQuery(core.RequestBookAcquisition))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, "REQ-1", result.Requests[0].ID)
	assert.Equal(t, "REQ-4", result.Requests[1].ID)
	assert.Equal(t, core.AcquisitionData{Title: "Dune", Author: "Frank Herbert"}, result.Requests[0].Data)
}

func Test_QueryHandler_Handle_RejectsUnknownType(t *testing.T) {
	// arrange
	handler, err := pendingrequests.NewQueryHandler(fixtures.NewEventStore(t))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(context.Background(), pendingrequests.BuildQuery("book_donation"))

	// assert
	assert.ErrorIs(t, err, core.ErrValidation)
}

func givenAcquisition(id string, at time.Time) core.UserRequest {
	return core.UserRequest{
		ID:        id,
		Type:      core.RequestBookAcquisition,
		UserID:    "member_1000",
		Data:      core.AcquisitionData{Title: "Dune", Author: "Frank Herbert"},
		Status:    core.RequestPending,
		Timestamp: at,
		Priority:  core.PriorityHigh,
	}
}

func givenEnrollment(id string, at time.Time) core.UserRequest {
	return core.UserRequest{
		ID:        id,
		Type:      core.RequestUserEnrollment,
		UserID:    "member_1001",
		Data:      core.EnrollmentData{Name: "Ada Lovelace", Department: "Mathematics"},
		Status:    core.RequestPending,
		Timestamp: at,
		Priority:  core.PriorityLow,
	}
}
