package broker

import (
	"context"
	"fmt"
	"time"

	"inventory-service/internal/models"
	"inventory-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ActivityPublisher ships audit events to the log sink. Publishing is
// fire-and-forget: a failure is counted and logged, never surfaced to the
// mutation that produced the event.
type ActivityPublisher struct {
	producer *Producer
	logger   *zap.Logger
}

// NewActivityPublisher creates a new activity publisher
func NewActivityPublisher(producer *Producer) *ActivityPublisher {
	return &ActivityPublisher{
		producer: producer,
		logger:   util.NamedLogger("activity"),
	}
}

// Record publishes an ActivityRecorded event in the background and returns
// immediately.
func (ap *ActivityPublisher) Record(_ context.Context, username, action, targetType, targetName, detail string) {
	event := &models.ActivityRecordedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeActivityRecorded,
			Timestamp: time.Now(),
		},
		Username:   username,
		Action:     action,
		TargetType: targetType,
		TargetName: targetName,
		Detail:     detail,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		key := fmt.Sprintf("%s-%s", targetType, targetName)
		if err := ap.producer.PublishEvent(ctx, key, event); err != nil {
			util.ActivityEventsDropped.Inc()
			ap.logger.Error("Failed to publish activity event",
				zap.String("action", action),
				zap.String("target", targetName),
				zap.Error(err))
			return
		}
		util.ActivityEventsPublished.Inc()
	}()
}
