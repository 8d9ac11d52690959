package models

import "time"

// Event types
const (
	EventTypeActivityRecorded = "ACTIVITY_RECORDED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ActivityRecordedEvent is published after a successful mutation. The log
// worker persists it to the logs table; publish or persist failures never
// affect the mutation that produced it.
type ActivityRecordedEvent struct {
	BaseEvent
	Username   string `json:"username"`
	Action     string `json:"action"`
	TargetType string `json:"target_type"`
	TargetName string `json:"target_name"`
	Detail     string `json:"detail"`
}
