package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/repairshop-service/internal/backend"
	"github.com/spec-kit/repairshop-service/internal/domain"
	"github.com/spec-kit/repairshop-service/internal/events"
	"github.com/spec-kit/repairshop-service/internal/observability"
	"github.com/spec-kit/repairshop-service/internal/offline"
	"github.com/spec-kit/repairshop-service/internal/storage"
	apperrors "github.com/spec-kit/repairshop-service/pkg/util"
)

// fakeBackend lets each test script the backend's mood.
type fakeBackend struct {
	backend.Client

	createErr error
	listErr   error
	jobs      []domain.Job
	created   int
}

func (f *fakeBackend) CreateJob(ctx context.Context, input backend.JobCreateInput) (*domain.Job, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created++
	return &domain.Job{ID: "j1", Device: input.Device, Status: domain.JobStatusReceived}, nil
}

func (f *fakeBackend) ListJobs(ctx context.Context) ([]domain.Job, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.jobs, nil
}

func newJobService(t *testing.T, client backend.Client) (*JobService, *offline.Queue, *offline.JobListCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	store := offline.NewStore(storage.NewRedisMediumFromClient(redisClient), zap.NewNop(), time.Hour)
	queue := offline.NewQueue(store, zap.NewNop())
	cache := offline.NewJobListCache(store)
	svc := NewJobService(JobDependencies{
		Backend:    client,
		Cache:      cache,
		Queue:      queue,
		Dispatcher: events.NewInMemoryDispatcher(zap.NewNop()),
		Metrics:    observability.NewMetrics(),
		Logger:     zap.NewNop(),
	})
	return svc, queue, cache
}

func TestCreateJobOnline(t *testing.T) {
	fake := &fakeBackend{}
	svc, queue, _ := newJobService(t, fake)

	result, err := svc.CreateJob(context.Background(), backend.JobCreateInput{CustomerID: "c1", Device: "pixel 8"})
	require.NoError(t, err)
	assert.False(t, result.Queued)
	require.NotNil(t, result.Job)
	assert.Equal(t, "j1", result.Job.ID)
	assert.Empty(t, queue.GetAll(context.Background()))
}

func TestCreateJobQueuesWhenOffline(t *testing.T) {
	fake := &fakeBackend{createErr: backend.ErrUnavailable}
	svc, queue, _ := newJobService(t, fake)

	result, err := svc.CreateJob(context.Background(), backend.JobCreateInput{CustomerID: "c1", Device: "pixel 8"})
	require.NoError(t, err)
	assert.True(t, result.Queued)
	require.NotNil(t, result.Action)

	pending := queue.GetAll(context.Background())
	require.Len(t, pending, 1)
	assert.Equal(t, domain.ActionCreateJob, pending[0].Type)
	assert.Zero(t, pending[0].RetryCount)
}

func TestCreateJobHardErrorIsNotQueued(t *testing.T) {
	fake := &fakeBackend{createErr: errors.New("customer does not exist")}
	svc, queue, _ := newJobService(t, fake)

	_, err := svc.CreateJob(context.Background(), backend.JobCreateInput{CustomerID: "nope"})
	require.Error(t, err)
	assert.Empty(t, queue.GetAll(context.Background()))
}

func TestListJobsRefreshesCacheThenFallsBack(t *testing.T) {
	fake := &fakeBackend{jobs: []domain.Job{{ID: "j1", Device: "switch"}}}
	svc, _, _ := newJobService(t, fake)
	ctx := context.Background()

	jobs, fromCache, err := svc.ListJobs(ctx)
	require.NoError(t, err)
	assert.False(t, fromCache)
	require.Len(t, jobs, 1)

	// Backend drops away: the cached list keeps the screen alive.
	fake.listErr = backend.ErrUnavailable
	jobs, fromCache, err = svc.ListJobs(ctx)
	require.NoError(t, err)
	assert.True(t, fromCache)
	require.Len(t, jobs, 1)
	assert.Equal(t, "j1", jobs[0].ID)
}

func TestListJobsOfflineWithColdCache(t *testing.T) {
	fake := &fakeBackend{listErr: backend.ErrUnavailable}
	svc, _, _ := newJobService(t, fake)

	_, _, err := svc.ListJobs(context.Background())
	require.Error(t, err)

	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", de.Code)
}
