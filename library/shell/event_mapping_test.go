package shell_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/shell"
)

func Test_StorableEventFrom_RoundTripsLedgerEvent(t *testing.T) {
	// arrange
	issuedAt := time.Date(2026, 5, 4, 12, 30, 0, 0, time.UTC)
	event := core.BuildBookCopyIssued("TXN-123456", "ACC-10001", "B-10000", "Artifact Title 10000", "member_1001", core.DefaultOperator, issuedAt)
	metadata := shell.NewCommandEventMetadata()

	// act
	storableEvent, err := shell.StorableEventFrom(event, metadata)
	require.NoError(t, err)

	domainEvent, err := shell.DomainEventFrom(storableEvent)
	require.NoError(t, err)

	readMetadata, err := shell.EventMetadataFrom(storableEvent)
	require.NoError(t, err)

	// assert
	assert.Equal(t, core.BookCopyIssuedEventType, storableEvent.EventType)
	assert.Contains(t, string(storableEvent.PayloadJSON), `"CopyID":"ACC-10001"`)
	assert.Equal(t, event, domainEvent)
	assert.Equal(t, metadata, readMetadata)
	assert.Equal(t, metadata.MessageID, metadata.CorrelationID)
}

func Test_DomainEventFrom_UnknownEventType(t *testing.T) {
	storableEvent, err := eventstore.BuildStorableEventWithEmptyMetadata("BookCopyTeleported", time.Now(), []byte(`{}`))
	require.NoError(t, err)

	_, err = shell.DomainEventFrom(storableEvent)

	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventFailed)
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventUnknownEventType)
}

func Test_DomainEventFrom_BrokenPayload(t *testing.T) {
	storableEvent := eventstore.StorableEvent{
		EventType:   core.MemberRegisteredEventType,
		PayloadJSON: []byte(`{"Username": 42}`),
	}

	_, err := shell.DomainEventFrom(storableEvent)

	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventFailed)
}

func Test_CausedBy_KeepsCorrelation(t *testing.T) {
	parent := shell.NewCommandEventMetadata()

	child := shell.CausedBy(parent)

	assert.Equal(t, parent.CorrelationID, child.CorrelationID)
	assert.Equal(t, parent.MessageID, child.CausationID)
	assert.NotEqual(t, parent.MessageID, child.MessageID)
}
