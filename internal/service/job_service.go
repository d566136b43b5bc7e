package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/repairshop-service/internal/backend"
	"github.com/spec-kit/repairshop-service/internal/domain"
	"github.com/spec-kit/repairshop-service/internal/events"
	"github.com/spec-kit/repairshop-service/internal/observability"
	"github.com/spec-kit/repairshop-service/internal/offline"
	apperrors "github.com/spec-kit/repairshop-service/pkg/util"
)

// JobService coordinates repair-job workflows around the offline core:
// mutations go to the backend first and fall into the durable queue
// when it is unreachable; reads refresh the list cache on success and
// fall back to it when offline.
type JobService struct {
	backend    backend.Client
	cache      *offline.JobListCache
	queue      *offline.Queue
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// JobDependencies bundles collaborators for the job service.
type JobDependencies struct {
	Backend    backend.Client
	Cache      *offline.JobListCache
	Queue      *offline.Queue
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// MutationResult reports how a mutation landed: applied directly, or
// parked in the queue for a later flush.
type MutationResult struct {
	Job    *domain.Job
	Note   *domain.JobNote
	Queued bool
	Action *domain.QueuedAction
}

// NewJobService constructs the service.
func NewJobService(deps JobDependencies) *JobService {
	return &JobService{
		backend:    deps.Backend,
		cache:      deps.Cache,
		queue:      deps.Queue,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
}

// CreateJob registers a repair order, queueing it when offline.
func (s *JobService) CreateJob(ctx context.Context, input backend.JobCreateInput) (*MutationResult, error) {
	job, err := s.backend.CreateJob(ctx, input)
	if err == nil {
		s.cache.Clear(ctx)
		return &MutationResult{Job: job}, nil
	}
	if !backend.IsUnavailable(err) {
		return nil, err
	}
	return s.enqueue(ctx, domain.ActionCreateJob, input, err), nil
}

// UpdateJob applies a partial update, queueing it when offline.
func (s *JobService) UpdateJob(ctx context.Context, input backend.JobUpdateInput) (*MutationResult, error) {
	job, err := s.backend.UpdateJob(ctx, input)
	if err == nil {
		s.cache.Clear(ctx)
		return &MutationResult{Job: job}, nil
	}
	if !backend.IsUnavailable(err) {
		return nil, err
	}
	return s.enqueue(ctx, domain.ActionUpdateJob, input, err), nil
}

// DeleteJob removes a job, queueing the removal when offline.
func (s *JobService) DeleteJob(ctx context.Context, jobID string) (*MutationResult, error) {
	err := s.backend.DeleteJob(ctx, jobID)
	if err == nil {
		s.cache.Clear(ctx)
		return &MutationResult{}, nil
	}
	if !backend.IsUnavailable(err) {
		return nil, err
	}
	payload := backend.JobUpdateInput{JobID: jobID}
	return s.enqueue(ctx, domain.ActionDeleteJob, payload, err), nil
}

// AddNote attaches a note to a job, queueing it when offline.
func (s *JobService) AddNote(ctx context.Context, input backend.NoteInput) (*MutationResult, error) {
	note, err := s.backend.AddNote(ctx, input)
	if err == nil {
		return &MutationResult{Note: note}, nil
	}
	if !backend.IsUnavailable(err) {
		return nil, err
	}
	return s.enqueue(ctx, domain.ActionAddNote, input, err), nil
}

// ListJobs returns the current jobs, preferring the backend and falling
// back to the cached list when offline. fromCache tells the caller the
// data may be stale.
func (s *JobService) ListJobs(ctx context.Context) (jobs []domain.Job, fromCache bool, err error) {
	jobs, err = s.backend.ListJobs(ctx)
	if err == nil {
		s.cache.Set(ctx, jobs, 0)
		s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventCacheRefreshed,
			Payload: events.CacheRefreshedPayload{Key: offline.KeyJobsList, Items: len(jobs)},
		})
		return jobs, false, nil
	}
	if !backend.IsUnavailable(err) {
		return nil, false, err
	}
	if cached, ok := s.cache.Get(ctx); ok {
		s.metrics.RecordOffline(observability.CounterCacheHit)
		s.logger.Info("serving jobs from offline cache", zap.Int("items", len(cached)))
		return cached, true, nil
	}
	s.metrics.RecordOffline(observability.CounterCacheMiss)
	return nil, false, apperrors.NewUpstreamUnavailable(err)
}

// enqueue parks the mutation in the durable queue and reports it queued.
func (s *JobService) enqueue(ctx context.Context, actionType domain.ActionType, payload any, cause error) *MutationResult {
	s.logger.Info("backend unreachable, queueing action",
		zap.String("type", string(actionType)), zap.Error(cause))
	action := s.queue.Add(ctx, actionType, payload)
	s.metrics.RecordOffline(observability.CounterEnqueued)
	s.dispatcher.Publish(ctx, events.Event{
		Type: events.EventActionEnqueued,
		Payload: events.ActionPayload{
			ActionID:   action.ID,
			ActionType: action.Type,
			RetryCount: action.RetryCount,
			QueueDepth: s.queue.Depth(ctx),
		},
	})
	return &MutationResult{Queued: true, Action: &action}
}
