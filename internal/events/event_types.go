package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTaskSaved   EventType = "task_saved"
	EventTaskDeleted EventType = "task_deleted"
)

// Event represents a task mutation emitted by services. Creator identifies
// whose cached lookup values the mutation may have changed.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	TaskID    string    `json:"task_id"`
	Creator   string    `json:"creator"`
	Timestamp time.Time `json:"timestamp"`
}
