package events

import (
	"time"

	"github.com/spec-kit/repairshop-service/internal/domain"
)

// EventType enumerates offline lifecycle event identifiers.
type EventType string

const (
	EventActionEnqueued      EventType = "action_enqueued"
	EventActionFlushed       EventType = "action_flushed"
	EventActionRetried       EventType = "action_retried"
	EventCacheRefreshed      EventType = "cache_refreshed"
	EventConnectivityChanged EventType = "connectivity_changed"
)

// Event is emitted as the offline layer queues, replays and caches.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ActionPayload accompanies queue lifecycle events.
type ActionPayload struct {
	ActionID   string            `json:"action_id"`
	ActionType domain.ActionType `json:"action_type"`
	RetryCount int               `json:"retry_count"`
	QueueDepth int               `json:"queue_depth"`
}

// CacheRefreshedPayload accompanies cache refreshes.
type CacheRefreshedPayload struct {
	Key   string `json:"key"`
	Items int    `json:"items"`
}

// ConnectivityPayload accompanies connectivity transitions.
type ConnectivityPayload struct {
	Online bool `json:"online"`
}
