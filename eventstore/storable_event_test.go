package eventstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aegislib/circulation/eventstore"
)

func Test_BuildStorableEvent(t *testing.T) {
	occurredAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		payload     []byte
		metadata    []byte
		expectedErr error
	}{
		{name: "valid_payload_and_metadata", payload: []byte(`{"CopyID":"ACC-1"}`), metadata: []byte(`{"MessageID":"m"}`)},
		{name: "invalid_payload", payload: []byte(`{"CopyID":`), metadata: []byte(`{}`), expectedErr: eventstore.ErrInvalidPayloadJSON},
		{name: "invalid_metadata", payload: []byte(`{}`), metadata: []byte(`nope`), expectedErr: eventstore.ErrInvalidMetadataJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// act
			event, err := eventstore.BuildStorableEvent("BookCopyIssued", occurredAt, tt.payload, tt.metadata)

			// assert
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, event.EventType)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "BookCopyIssued", event.EventType)
			assert.Equal(t, occurredAt, event.OccurredAt)
			assert.JSONEq(t, string(tt.payload), string(event.PayloadJSON))
		})
	}
}

func Test_BuildStorableEventWithEmptyMetadata(t *testing.T) {
	event, err := eventstore.BuildStorableEventWithEmptyMetadata("RuleAdded", time.Now(), []byte(`{"RuleID":"1"}`))

	assert.NoError(t, err)
	assert.Equal(t, []byte("{}"), event.MetadataJSON)
}
