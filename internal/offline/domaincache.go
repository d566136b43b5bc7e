package offline

import (
	"context"
	"time"

	"github.com/spec-kit/repairshop-service/internal/domain"
)

// Logical keys for the typed list caches.
const (
	KeyJobsList          = "jobs_list"
	KeyCustomersList     = "customers_list"
	KeyNotificationsList = "notifications_list"
)

// The typed caches below are fixed-key specializations of the Store.
// They hold no logic of their own; call sites depend on the narrower
// interface so the logical keys are never scattered around the app.

// JobListCache holds the last known jobs list.
type JobListCache struct {
	store *Store
}

// NewJobListCache builds the cache.
func NewJobListCache(store *Store) *JobListCache {
	return &JobListCache{store: store}
}

// Set stores the jobs list. A zero ttl uses the store default.
func (c *JobListCache) Set(ctx context.Context, jobs []domain.Job, ttl time.Duration) {
	c.store.SetWithTTL(ctx, KeyJobsList, jobs, ttl)
}

// Get returns the cached list, or ok=false on a miss.
func (c *JobListCache) Get(ctx context.Context) ([]domain.Job, bool) {
	var jobs []domain.Job
	if !c.store.Get(ctx, KeyJobsList, &jobs) {
		return nil, false
	}
	return jobs, true
}

// Clear drops the cached list.
func (c *JobListCache) Clear(ctx context.Context) {
	c.store.Remove(ctx, KeyJobsList)
}

// CustomerListCache holds the last known customers list.
type CustomerListCache struct {
	store *Store
}

// NewCustomerListCache builds the cache.
func NewCustomerListCache(store *Store) *CustomerListCache {
	return &CustomerListCache{store: store}
}

// Set stores the customers list. A zero ttl uses the store default.
func (c *CustomerListCache) Set(ctx context.Context, customers []domain.Customer, ttl time.Duration) {
	c.store.SetWithTTL(ctx, KeyCustomersList, customers, ttl)
}

// Get returns the cached list, or ok=false on a miss.
func (c *CustomerListCache) Get(ctx context.Context) ([]domain.Customer, bool) {
	var customers []domain.Customer
	if !c.store.Get(ctx, KeyCustomersList, &customers) {
		return nil, false
	}
	return customers, true
}

// Clear drops the cached list.
func (c *CustomerListCache) Clear(ctx context.Context) {
	c.store.Remove(ctx, KeyCustomersList)
}

// NotificationListCache holds the last known notifications list.
type NotificationListCache struct {
	store *Store
}

// NewNotificationListCache builds the cache.
func NewNotificationListCache(store *Store) *NotificationListCache {
	return &NotificationListCache{store: store}
}

// Set stores the notifications list. A zero ttl uses the store default.
func (c *NotificationListCache) Set(ctx context.Context, notifications []domain.Notification, ttl time.Duration) {
	c.store.SetWithTTL(ctx, KeyNotificationsList, notifications, ttl)
}

// Get returns the cached list, or ok=false on a miss.
func (c *NotificationListCache) Get(ctx context.Context) ([]domain.Notification, bool) {
	var notifications []domain.Notification
	if !c.store.Get(ctx, KeyNotificationsList, &notifications) {
		return nil, false
	}
	return notifications, true
}

// Clear drops the cached list.
func (c *NotificationListCache) Clear(ctx context.Context) {
	c.store.Remove(ctx, KeyNotificationsList)
}
