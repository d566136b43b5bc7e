package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/repairshop-service/internal/backend"
	"github.com/spec-kit/repairshop-service/internal/domain"
	"github.com/spec-kit/repairshop-service/internal/events"
	"github.com/spec-kit/repairshop-service/internal/observability"
	"github.com/spec-kit/repairshop-service/internal/offline"
)

// Flusher is the retry-policy caller on top of the passive queue ledger.
// It drains pending actions in enqueue order, removing each on success
// and bumping its retry counter on failure. When the backend answers
// "unavailable" mid-drain the pass stops; the remaining actions wait for
// the next connectivity window. There is no max-retry cutoff: a
// permanently failing action keeps its growing counter until someone
// discards it.
type Flusher struct {
	queue      *offline.Queue
	backend    backend.Client
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	interval   time.Duration
}

// FlushStats summarizes one drain pass.
type FlushStats struct {
	Attempted int
	Flushed   int
	Retried   int
}

// NewFlusher constructs the flusher.
func NewFlusher(queue *offline.Queue, client backend.Client, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger, interval time.Duration) *Flusher {
	return &Flusher{
		queue:      queue,
		backend:    client,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
		interval:   interval,
	}
}

// Run flushes on every reconnect signal and on a steady tick, until the
// context is cancelled.
func (f *Flusher) Run(ctx context.Context, online <-chan bool) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case isOnline := <-online:
			if isOnline {
				f.Flush(ctx)
			}
		case <-ticker.C:
			f.Flush(ctx)
		}
	}
}

// Flush drains the queue once, in FIFO order.
func (f *Flusher) Flush(ctx context.Context) FlushStats {
	var stats FlushStats
	pending := f.queue.GetAll(ctx)
	if len(pending) == 0 {
		return stats
	}
	f.logger.Info("flushing offline queue", zap.Int("pending", len(pending)))

	for _, action := range pending {
		stats.Attempted++
		err := f.apply(ctx, action)
		if err == nil {
			f.queue.Remove(ctx, action.ID)
			f.metrics.RecordOffline(observability.CounterFlushed)
			f.dispatcher.Publish(ctx, events.Event{
				Type: events.EventActionFlushed,
				Payload: events.ActionPayload{
					ActionID:   action.ID,
					ActionType: action.Type,
					RetryCount: action.RetryCount,
					QueueDepth: f.queue.Depth(ctx),
				},
			})
			stats.Flushed++
			continue
		}

		f.queue.IncrementRetry(ctx, action.ID)
		f.metrics.RecordOffline(observability.CounterRetried)
		f.dispatcher.Publish(ctx, events.Event{
			Type: events.EventActionRetried,
			Payload: events.ActionPayload{
				ActionID:   action.ID,
				ActionType: action.Type,
				RetryCount: action.RetryCount + 1,
				QueueDepth: f.queue.Depth(ctx),
			},
		})
		stats.Retried++

		if backend.IsUnavailable(err) {
			// Still offline; leave the rest for the next window.
			f.logger.Info("backend still unreachable, pausing flush",
				zap.String("action_id", action.ID))
			return stats
		}
		f.logger.Warn("queued action rejected, will retry",
			zap.String("action_id", action.ID),
			zap.String("type", string(action.Type)),
			zap.Int("retry_count", action.RetryCount+1),
			zap.Error(err))
	}
	return stats
}

// apply replays one queued action against the backend.
func (f *Flusher) apply(ctx context.Context, action domain.QueuedAction) error {
	switch action.Type {
	case domain.ActionCreateJob:
		var input backend.JobCreateInput
		if err := json.Unmarshal(action.Payload, &input); err != nil {
			return fmt.Errorf("decode %s payload: %w", action.Type, err)
		}
		_, err := f.backend.CreateJob(ctx, input)
		return err
	case domain.ActionUpdateJob:
		var input backend.JobUpdateInput
		if err := json.Unmarshal(action.Payload, &input); err != nil {
			return fmt.Errorf("decode %s payload: %w", action.Type, err)
		}
		_, err := f.backend.UpdateJob(ctx, input)
		return err
	case domain.ActionDeleteJob:
		var input backend.JobUpdateInput
		if err := json.Unmarshal(action.Payload, &input); err != nil {
			return fmt.Errorf("decode %s payload: %w", action.Type, err)
		}
		return f.backend.DeleteJob(ctx, input.JobID)
	case domain.ActionAddNote:
		var input backend.NoteInput
		if err := json.Unmarshal(action.Payload, &input); err != nil {
			return fmt.Errorf("decode %s payload: %w", action.Type, err)
		}
		_, err := f.backend.AddNote(ctx, input)
		return err
	default:
		return fmt.Errorf("unknown action type %q", action.Type)
	}
}
