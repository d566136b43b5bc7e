package offline

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/repairshop-service/internal/domain"
)

// KeyQueue is the logical key the whole action queue is persisted under.
const KeyQueue = "offline_queue"

// Queue is the durable ledger of pending mutations. The entire list is
// serialized as one cache entry and mutated read-modify-write: the only
// consumer drains everything in order, so whole-list persistence beats
// per-item coordination. A mutex serializes writers within this process;
// across processes the last writer wins, an accepted limitation for a
// single-app-instance client.
//
// The queue stores policy-free state. Deciding when to replay, back off
// or give up belongs to the flush caller, which removes actions on
// success and bumps RetryCount on failure. There is no max-retry
// eviction; a permanently failing action stays until explicitly
// discarded.
type Queue struct {
	mu     sync.Mutex
	store  *Store
	logger *zap.Logger
}

// NewQueue builds a queue over the cache store.
func NewQueue(store *Store, logger *zap.Logger) *Queue {
	return &Queue{store: store, logger: logger}
}

// Add appends a pending action stamped with a fresh id, the current
// time and a zero retry count, and returns the stamped action. Like all
// cache writes this is best-effort: a failed persist is logged and the
// action may be lost.
func (q *Queue) Add(ctx context.Context, actionType domain.ActionType, payload any) domain.QueuedAction {
	raw, err := json.Marshal(payload)
	if err != nil {
		q.logger.Warn("queue add: payload marshal failed", zap.String("type", string(actionType)), zap.Error(err))
		raw = json.RawMessage("null")
	}
	action := domain.QueuedAction{
		ID:        uuid.NewString(),
		Type:      actionType,
		Payload:   raw,
		Timestamp: q.store.now().UnixMilli(),
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	actions := q.load(ctx)
	q.persist(ctx, append(actions, action))

	q.logger.Info("action queued",
		zap.String("action_id", action.ID),
		zap.String("type", string(actionType)),
		zap.Int("queue_depth", len(actions)+1))
	return action
}

// GetAll returns the pending actions in enqueue order. An absent or
// unreadable queue is an empty one.
func (q *Queue) GetAll(ctx context.Context) []domain.QueuedAction {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.load(ctx)
}

// Remove discards the action by id. Removing an id that is no longer
// present is a silent no-op: a racing flush may have already processed
// it.
func (q *Queue) Remove(ctx context.Context, actionID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	actions := q.load(ctx)
	kept := actions[:0]
	for _, action := range actions {
		if action.ID != actionID {
			kept = append(kept, action)
		}
	}
	if len(kept) == len(actions) {
		return
	}
	q.persist(ctx, kept)
}

// IncrementRetry bumps the retry counter of the action by id, leaving
// every other action untouched. Unknown ids are a silent no-op.
func (q *Queue) IncrementRetry(ctx context.Context, actionID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	actions := q.load(ctx)
	for i := range actions {
		if actions[i].ID == actionID {
			actions[i].RetryCount++
			q.persist(ctx, actions)
			return
		}
	}
}

// Clear drops the entire queue.
func (q *Queue) Clear(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.store.Remove(ctx, KeyQueue)
}

// Depth returns the number of pending actions.
func (q *Queue) Depth(ctx context.Context) int {
	return len(q.GetAll(ctx))
}

func (q *Queue) load(ctx context.Context) []domain.QueuedAction {
	var actions []domain.QueuedAction
	if !q.store.Get(ctx, KeyQueue, &actions) {
		return nil
	}
	return actions
}

// persist writes the full list back. The queue must never lazily
// expire, so it is always written without an expiry stamp.
func (q *Queue) persist(ctx context.Context, actions []domain.QueuedAction) {
	q.store.SetWithTTL(ctx, KeyQueue, actions, NoExpiry)
}
