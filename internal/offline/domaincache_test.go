package offline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/repairshop-service/internal/domain"
)

func TestJobListCacheUsesFixedKey(t *testing.T) {
	store, mr := newTestStore(t)
	cache := NewJobListCache(store)
	ctx := context.Background()

	cache.Set(ctx, []domain.Job{{ID: "j1", Device: "ps5"}}, 0)
	require.True(t, mr.Exists("offline_cache_jobs_list"))

	jobs, ok := cache.Get(ctx)
	require.True(t, ok)
	require.Len(t, jobs, 1)
	assert.Equal(t, "j1", jobs[0].ID)

	cache.Clear(ctx)
	_, ok = cache.Get(ctx)
	assert.False(t, ok)
}

func TestCustomerListCacheRoundTrip(t *testing.T) {
	store, mr := newTestStore(t)
	cache := NewCustomerListCache(store)
	ctx := context.Background()

	_, ok := cache.Get(ctx)
	assert.False(t, ok)

	cache.Set(ctx, []domain.Customer{{ID: "c1", Name: "Ada"}}, 0)
	require.True(t, mr.Exists("offline_cache_customers_list"))

	customers, ok := cache.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "Ada", customers[0].Name)
}

func TestNotificationListCacheRoundTrip(t *testing.T) {
	store, mr := newTestStore(t)
	cache := NewNotificationListCache(store)
	ctx := context.Background()

	cache.Set(ctx, []domain.Notification{{ID: "n1", Title: "ready"}}, 0)
	require.True(t, mr.Exists("offline_cache_notifications_list"))

	notifications, ok := cache.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "ready", notifications[0].Title)
}
