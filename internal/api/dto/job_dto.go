package dto

import (
	"time"

	"github.com/spec-kit/repairshop-service/internal/domain"
)

// CreateJobRequest payload.
type CreateJobRequest struct {
	CustomerID string             `json:"customer_id"`
	BranchID   *string            `json:"branch_id"`
	Device     string             `json:"device"`
	Issue      string             `json:"issue"`
	Priority   domain.JobPriority `json:"priority"`
	Tags       []string           `json:"tags"`
}

// UpdateJobRequest payload. Nil fields are left untouched.
type UpdateJobRequest struct {
	Status       *domain.JobStatus   `json:"status"`
	Priority     *domain.JobPriority `json:"priority"`
	TechnicianID *string             `json:"technician_id"`
}

// AddNoteRequest payload.
type AddNoteRequest struct {
	Body string `json:"body"`
}

// JobSummary response.
type JobSummary struct {
	ID           string             `json:"id"`
	ExternalKey  string             `json:"external_key"`
	CustomerID   string             `json:"customer_id"`
	BranchID     *string            `json:"branch_id,omitempty"`
	TechnicianID *string            `json:"technician_id,omitempty"`
	Device       string             `json:"device"`
	Issue        string             `json:"issue"`
	Status       domain.JobStatus   `json:"status"`
	Priority     domain.JobPriority `json:"priority"`
	Tags         []string           `json:"tags,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// QueuedActionResponse describes a mutation parked for later replay.
type QueuedActionResponse struct {
	ActionID   string            `json:"action_id"`
	Type       domain.ActionType `json:"type"`
	Timestamp  int64             `json:"timestamp"`
	RetryCount int               `json:"retry_count"`
}
