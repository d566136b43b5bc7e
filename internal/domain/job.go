package domain

import "time"

// JobStatus enumerates lifecycle states for repair jobs.
type JobStatus string

const (
	JobStatusReceived      JobStatus = "RECEIVED"
	JobStatusDiagnosed     JobStatus = "DIAGNOSED"
	JobStatusInRepair      JobStatus = "IN_REPAIR"
	JobStatusAwaitingParts JobStatus = "AWAITING_PARTS"
	JobStatusReady         JobStatus = "READY"
	JobStatusDelivered     JobStatus = "DELIVERED"
	JobStatusCancelled     JobStatus = "CANCELLED"
)

// JobPriority enumerates repair urgency.
type JobPriority string

const (
	JobPriorityLow    JobPriority = "LOW"
	JobPriorityMedium JobPriority = "MEDIUM"
	JobPriorityHigh   JobPriority = "HIGH"
	JobPriorityUrgent JobPriority = "URGENT"
)

// Job is the aggregate for a device repair order.
type Job struct {
	ID           string      `json:"id"`
	ExternalKey  string      `json:"external_key"`
	CustomerID   string      `json:"customer_id"`
	BranchID     *string     `json:"branch_id,omitempty"`
	TechnicianID *string     `json:"technician_id,omitempty"`
	Device       string      `json:"device"`
	Issue        string      `json:"issue"`
	Status       JobStatus   `json:"status"`
	Priority     JobPriority `json:"priority"`
	Tags         []string    `json:"tags,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	DeliveredAt  *time.Time  `json:"delivered_at,omitempty"`
}

// JobNote is a technician or customer annotation on a job.
type JobNote struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
