package sync

import (
	"context"
	"errors"
	stdsync "sync"
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
)

// stubBackend scripts backend behavior per call and records the order
// mutations arrive in.
type stubBackend struct {
	mu        stdsync.Mutex
	calls     []string
	createErr error
	updateErr error
	deleteErr error
	noteErr   error
	pingErr   error
}

func (s *stubBackend) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *stubBackend) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *stubBackend) CreateJob(ctx context.Context, input backend.JobCreateInput) (*domain.Job, error) {
	s.record("create:" + input.Device)
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &domain.Job{ID: "j-" + input.Device, Device: input.Device}, nil
}

func (s *stubBackend) UpdateJob(ctx context.Context, input backend.JobUpdateInput) (*domain.Job, error) {
	s.record("update:" + input.JobID)
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &domain.Job{ID: input.JobID}, nil
}

func (s *stubBackend) DeleteJob(ctx context.Context, jobID string) error {
	s.record("delete:" + jobID)
	return s.deleteErr
}

func (s *stubBackend) AddNote(ctx context.Context, input backend.NoteInput) (*domain.JobNote, error) {
	s.record("note:" + input.JobID)
	if s.noteErr != nil {
		return nil, s.noteErr
	}
	return &domain.JobNote{ID: "n1", JobID: input.JobID}, nil
}

func (s *stubBackend) ListJobs(context.Context) ([]domain.Job, error)           { return nil, nil }
func (s *stubBackend) ListCustomers(context.Context) ([]domain.Customer, error) { return nil, nil }
func (s *stubBackend) ListNotifications(context.Context, string) ([]domain.Notification, error) {
	return nil, nil
}
func (s *stubBackend) Ping(context.Context) error { return s.pingErr }

func newTestQueue(t *testing.T) *offline.Queue {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := offline.NewStore(storage.NewRedisMediumFromClient(client), zap.NewNop(), time.Hour)
	return offline.NewQueue(store, zap.NewNop())
}

func newTestFlusher(t *testing.T, client backend.Client) (*Flusher, *offline.Queue) {
	t.Helper()
	queue := newTestQueue(t)
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	flusher := NewFlusher(queue, client, dispatcher, observability.NewMetrics(), zap.NewNop(), time.Minute)
	return flusher, queue
}

func TestFlushDrainsInOrder(t *testing.T) {
	stub := &stubBackend{}
	flusher, queue := newTestFlusher(t, stub)
	ctx := context.Background()

	queue.Add(ctx, domain.ActionCreateJob, backend.JobCreateInput{Device: "a"})
	queue.Add(ctx, domain.ActionCreateJob, backend.JobCreateInput{Device: "b"})
	queue.Add(ctx, domain.ActionAddNote, backend.NoteInput{JobID: "j1", Body: "done"})

	stats := flusher.Flush(ctx)
	assert.Equal(t, FlushStats{Attempted: 3, Flushed: 3}, stats)
	assert.Empty(t, queue.GetAll(ctx))
	assert.Equal(t, []string{"create:a", "create:b", "note:j1"}, stub.Calls())
}

func TestFlushPausesWhileOffline(t *testing.T) {
	stub := &stubBackend{createErr: backend.ErrUnavailable}
	flusher, queue := newTestFlusher(t, stub)
	ctx := context.Background()

	queue.Add(ctx, domain.ActionCreateJob, backend.JobCreateInput{Device: "a"})
	queue.Add(ctx, domain.ActionCreateJob, backend.JobCreateInput{Device: "b"})

	stats := flusher.Flush(ctx)
	assert.Equal(t, FlushStats{Attempted: 1, Retried: 1}, stats)

	// Only the first action was attempted; both remain queued and only
	// the attempted one accrued a retry.
	pending := queue.GetAll(ctx)
	require.Len(t, pending, 2)
	assert.Equal(t, 1, pending[0].RetryCount)
	assert.Zero(t, pending[1].RetryCount)
	assert.Equal(t, []string{"create:a"}, stub.Calls())
}

func TestFlushKeepsGoingPastHardRejects(t *testing.T) {
	stub := &stubBackend{noteErr: errors.New("validation failed")}
	flusher, queue := newTestFlusher(t, stub)
	ctx := context.Background()

	rejected := queue.Add(ctx, domain.ActionAddNote, backend.NoteInput{JobID: "j1"})
	queue.Add(ctx, domain.ActionCreateJob, backend.JobCreateInput{Device: "ok"})

	stats := flusher.Flush(ctx)
	assert.Equal(t, FlushStats{Attempted: 2, Flushed: 1, Retried: 1}, stats)

	pending := queue.GetAll(ctx)
	require.Len(t, pending, 1)
	assert.Equal(t, rejected.ID, pending[0].ID)
	assert.Equal(t, 1, pending[0].RetryCount)
}

func TestFlushRetryCountAccrues(t *testing.T) {
	stub := &stubBackend{updateErr: errors.New("conflict")}
	flusher, queue := newTestFlusher(t, stub)
	ctx := context.Background()

	queue.Add(ctx, domain.ActionUpdateJob, backend.JobUpdateInput{JobID: "j9"})
	flusher.Flush(ctx)
	flusher.Flush(ctx)

	pending := queue.GetAll(ctx)
	require.Len(t, pending, 1)
	assert.Equal(t, 2, pending[0].RetryCount)
}

func TestRunFlushesOnReconnect(t *testing.T) {
	stub := &stubBackend{}
	flusher, queue := newTestFlusher(t, stub)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue.Add(ctx, domain.ActionCreateJob, backend.JobCreateInput{Device: "a"})

	online := make(chan bool, 1)
	done := make(chan struct{})
	go func() {
		flusher.Run(ctx, online)
		close(done)
	}()

	online <- true
	require.Eventually(t, func() bool {
		return queue.Depth(context.Background()) == 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-done
}
