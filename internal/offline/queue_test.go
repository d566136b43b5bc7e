package offline

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/repairshop-service/internal/domain"
)

func newTestQueue(t *testing.T) *Queue {
	t.Helper()
	store, _ := newTestStore(t)
	return NewQueue(store, zap.NewNop())
}

func TestQueueAddStampsAction(t *testing.T) {
	queue := newTestQueue(t)
	ctx := context.Background()

	action := queue.Add(ctx, domain.ActionCreateJob, map[string]string{"device": "pixel 8"})
	require.NotEmpty(t, action.ID)
	assert.Equal(t, domain.ActionCreateJob, action.Type)
	assert.Zero(t, action.RetryCount)
	assert.NotZero(t, action.Timestamp)

	pending := queue.GetAll(ctx)
	require.Len(t, pending, 1)
	assert.Equal(t, action.ID, pending[0].ID)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(pending[0].Payload, &payload))
	assert.Equal(t, "pixel 8", payload["device"])
}

func TestQueueFIFOOrder(t *testing.T) {
	queue := newTestQueue(t)
	ctx := context.Background()

	first := queue.Add(ctx, domain.ActionCreateJob, "a")
	second := queue.Add(ctx, domain.ActionUpdateJob, "b")
	third := queue.Add(ctx, domain.ActionAddNote, "c")

	pending := queue.GetAll(ctx)
	require.Len(t, pending, 3)
	assert.Equal(t, []string{first.ID, second.ID, third.ID},
		[]string{pending[0].ID, pending[1].ID, pending[2].ID})
}

func TestQueueEmptyWhenAbsent(t *testing.T) {
	queue := newTestQueue(t)
	assert.Empty(t, queue.GetAll(context.Background()))
	assert.Zero(t, queue.Depth(context.Background()))
}

func TestQueueRemove(t *testing.T) {
	queue := newTestQueue(t)
	ctx := context.Background()

	keep := queue.Add(ctx, domain.ActionCreateJob, "keep")
	drop := queue.Add(ctx, domain.ActionDeleteJob, "drop")

	queue.Remove(ctx, drop.ID)
	pending := queue.GetAll(ctx)
	require.Len(t, pending, 1)
	assert.Equal(t, keep.ID, pending[0].ID)
}

func TestQueueRemoveUnknownIDIsNoop(t *testing.T) {
	queue := newTestQueue(t)
	ctx := context.Background()

	queue.Add(ctx, domain.ActionCreateJob, "a")
	queue.Remove(ctx, "no-such-action")
	assert.Equal(t, 1, queue.Depth(ctx))
}

func TestQueueIncrementRetry(t *testing.T) {
	queue := newTestQueue(t)
	ctx := context.Background()

	flaky := queue.Add(ctx, domain.ActionUpdateJob, "flaky")
	steady := queue.Add(ctx, domain.ActionAddNote, "steady")

	queue.IncrementRetry(ctx, flaky.ID)
	queue.IncrementRetry(ctx, flaky.ID)
	queue.IncrementRetry(ctx, "no-such-action")

	pending := queue.GetAll(ctx)
	require.Len(t, pending, 2)
	assert.Equal(t, 2, pending[0].RetryCount)
	assert.Equal(t, steady.ID, pending[1].ID)
	assert.Zero(t, pending[1].RetryCount)
}

func TestQueueClear(t *testing.T) {
	queue := newTestQueue(t)
	ctx := context.Background()

	queue.Add(ctx, domain.ActionCreateJob, "a")
	queue.Add(ctx, domain.ActionAddNote, "b")
	queue.Clear(ctx)
	assert.Empty(t, queue.GetAll(ctx))
}

func TestQueueCreateJobScenario(t *testing.T) {
	queue := newTestQueue(t)
	ctx := context.Background()

	action := queue.Add(ctx, domain.ActionCreateJob, map[string]any{
		"device": "macbook air",
		"issue":  "liquid damage",
	})

	pending := queue.GetAll(ctx)
	require.Len(t, pending, 1)
	assert.Zero(t, pending[0].RetryCount)

	queue.Remove(ctx, action.ID)
	assert.Empty(t, queue.GetAll(ctx))
}
