package backend

import (
	"context"
	"errors"

	"github.com/spec-kit/repairshop-service/internal/domain"
)

// ErrUnavailable marks failures worth retrying later: the backend could
// not be reached or answered like it was down. Callers enqueue the
// mutation when they see it; any other error is a hard reject.
var ErrUnavailable = errors.New("backend unavailable")

// IsUnavailable reports whether the error means "try again when
// connectivity returns".
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// JobCreateInput describes a new repair order. The same struct is what
// gets serialized into a queued CREATE_JOB action.
type JobCreateInput struct {
	CustomerID string             `json:"customer_id"`
	BranchID   *string            `json:"branch_id,omitempty"`
	Device     string             `json:"device"`
	Issue      string             `json:"issue"`
	Priority   domain.JobPriority `json:"priority"`
	Tags       []string           `json:"tags,omitempty"`
}

// JobUpdateInput describes a partial job update; nil fields are left
// untouched by the backend.
type JobUpdateInput struct {
	JobID        string              `json:"job_id"`
	Status       *domain.JobStatus   `json:"status,omitempty"`
	Priority     *domain.JobPriority `json:"priority,omitempty"`
	TechnicianID *string             `json:"technician_id,omitempty"`
}

// NoteInput describes a note to attach to a job.
type NoteInput struct {
	JobID    string `json:"job_id"`
	AuthorID string `json:"author_id"`
	Body     string `json:"body"`
}

// Client is the hosted backend the app reads from and replays queued
// mutations against. The data store behind it is entirely out of this
// service's hands.
type Client interface {
	CreateJob(ctx context.Context, input JobCreateInput) (*domain.Job, error)
	UpdateJob(ctx context.Context, input JobUpdateInput) (*domain.Job, error)
	DeleteJob(ctx context.Context, jobID string) error
	AddNote(ctx context.Context, input NoteInput) (*domain.JobNote, error)
	ListJobs(ctx context.Context) ([]domain.Job, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error)
	Ping(ctx context.Context) error
}
