package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CRISIS_DETECTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewCrisisDetectedEvent records a severe-crisis short circuit for the
// safety audit stream. The message text itself is never included.
func NewCrisisDetectedEvent(userId string, severity string, alertSent bool) Event {
	return BaseEvent{
		Type: "CRISIS_DETECTED",
		Data: map[string]interface{}{
			"user_id":    userId,
			"severity":   severity,
			"alert_sent": alertSent,
		},
		OccurredAt: time.Now(),
	}
}
