package domain

import "encoding/json"

// ActionType enumerates the mutation kinds that can be deferred while
// the backend is unreachable.
type ActionType string

const (
	ActionCreateJob ActionType = "CREATE_JOB"
	ActionUpdateJob ActionType = "UPDATE_JOB"
	ActionDeleteJob ActionType = "DELETE_JOB"
	ActionAddNote   ActionType = "ADD_NOTE"
)

// QueuedAction is one pending mutation awaiting replay. Timestamp is
// epoch milliseconds, matching the stored cache envelope. RetryCount is
// only ever incremented; the entry leaves the queue on successful replay
// or explicit discard.
type QueuedAction struct {
	ID         string          `json:"id"`
	Type       ActionType      `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	Timestamp  int64           `json:"timestamp"`
	RetryCount int             `json:"retryCount"`
}
