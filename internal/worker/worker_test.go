package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"inventory-service/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sinkStub struct {
	entries []models.LogEntry
	err     error
}

func (s *sinkStub) InsertLog(_ context.Context, entry *models.LogEntry) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, *entry)
	return nil
}

func activityMessage(t *testing.T) kafka.Message {
	t.Helper()
	event := models.ActivityRecordedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "e1",
			EventType: models.EventTypeActivityRecorded,
			Timestamp: time.Now(),
		},
		Username:   "root",
		Action:     models.ActionProductDeleted,
		TargetType: models.TargetProduct,
		TargetName: "Hammer",
		Detail:     `{"orders_removed":2}`,
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Value: payload}
}

func TestHandleMessagePersistsEntry(t *testing.T) {
	sink := &sinkStub{}
	w := NewActivityLogWorker(nil, sink)

	err := w.handleMessage(context.Background(), activityMessage(t))
	require.NoError(t, err)

	require.Len(t, sink.entries, 1)
	entry := sink.entries[0]
	assert.Equal(t, "root", entry.Username)
	assert.Equal(t, models.ActionProductDeleted, entry.Action)
	assert.Equal(t, "Hammer", entry.TargetName)
}

func TestHandleMessageDropsGarbage(t *testing.T) {
	sink := &sinkStub{}
	w := NewActivityLogWorker(nil, sink)

	err := w.handleMessage(context.Background(), kafka.Message{Value: []byte("not-json")})
	assert.NoError(t, err, "garbage must be dropped, not redelivered")
	assert.Empty(t, sink.entries)
}

func TestHandleMessageIgnoresOtherEventTypes(t *testing.T) {
	sink := &sinkStub{}
	w := NewActivityLogWorker(nil, sink)

	payload, err := json.Marshal(models.BaseEvent{EventID: "e2", EventType: "SOMETHING_ELSE"})
	require.NoError(t, err)

	require.NoError(t, w.handleMessage(context.Background(), kafka.Message{Value: payload}))
	assert.Empty(t, sink.entries)
}

func TestHandleMessageReturnsSinkError(t *testing.T) {
	sink := &sinkStub{err: errors.New("db down")}
	w := NewActivityLogWorker(nil, sink)

	err := w.handleMessage(context.Background(), activityMessage(t))
	assert.Error(t, err, "persist failures should trigger redelivery")
}
