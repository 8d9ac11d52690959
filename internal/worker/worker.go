package worker

import (
	"context"
	"encoding/json"
	"log"

	"inventory-service/internal/broker"
	"inventory-service/internal/models"
	"inventory-service/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// LogSink persists activity events. Satisfied by *store.Store.
type LogSink interface {
	InsertLog(ctx context.Context, entry *models.LogEntry) error
}

// ActivityLogWorker drains the activity topic into the logs table. It is the
// only writer of the logs table; losing an event here leaves a gap in the
// audit trail but never affects the operation that emitted it.
type ActivityLogWorker struct {
	consumer *broker.Consumer
	sink     LogSink
	logger   *zap.Logger
}

// NewActivityLogWorker creates a new activity log worker
func NewActivityLogWorker(consumer *broker.Consumer, sink LogSink) *ActivityLogWorker {
	return &ActivityLogWorker{
		consumer: consumer,
		sink:     sink,
		logger:   util.NamedLogger("activity-worker"),
	}
}

// Start starts the worker
func (w *ActivityLogWorker) Start(ctx context.Context) error {
	log.Println("Starting activity log worker...")
	return w.consumer.StartConsuming(ctx, w.handleMessage)
}

// Stop stops the worker
func (w *ActivityLogWorker) Stop() error {
	log.Println("Stopping activity log worker...")
	return w.consumer.Close()
}

func (w *ActivityLogWorker) handleMessage(ctx context.Context, msg kafka.Message) error {
	var event models.ActivityRecordedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// Unparseable messages are dropped rather than redelivered forever.
		w.logger.Error("Failed to unmarshal activity event", zap.Error(err))
		util.ActivityEventsDropped.Inc()
		return nil
	}

	if event.EventType != models.EventTypeActivityRecorded {
		return nil
	}

	entry := &models.LogEntry{
		Username:   event.Username,
		Action:     event.Action,
		TargetType: event.TargetType,
		TargetName: event.TargetName,
		Detail:     event.Detail,
	}

	if err := w.sink.InsertLog(ctx, entry); err != nil {
		w.logger.Error("Failed to persist activity event",
			zap.String("action", event.Action),
			zap.Error(err))
		return err
	}

	return nil
}
