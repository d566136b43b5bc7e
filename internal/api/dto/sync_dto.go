package dto

import (
	"time"

	"github.com/spec-kit/repairshop-service/internal/domain"
)

// CustomerSummary response.
type CustomerSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	BranchID *string `json:"branch_id,omitempty"`
}

// NotificationResponse response.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// QueueStatusResponse reports the pending queue for the ops surface.
type QueueStatusResponse struct {
	Depth   int                    `json:"depth"`
	Actions []QueuedActionResponse `json:"actions"`
}

// FlushResponse summarizes a manually triggered drain.
type FlushResponse struct {
	Attempted int `json:"attempted"`
	Flushed   int `json:"flushed"`
	Retried   int `json:"retried"`
}

// QueuedActionFromDomain maps a queued action into its response shape.
func QueuedActionFromDomain(action domain.QueuedAction) QueuedActionResponse {
	return QueuedActionResponse{
		ActionID:   action.ID,
		Type:       action.Type,
		Timestamp:  action.Timestamp,
		RetryCount: action.RetryCount,
	}
}
