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

// NotificationService serves in-app notifications, cache-first when the
// backend is away. The cache holds the current session's list.
type NotificationService struct {
	backend    backend.Client
	cache      *offline.NotificationListCache
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(client backend.Client, cache *offline.NotificationListCache, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		backend:    client,
		cache:      cache,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
	}
}

// ListNotifications returns the user's notifications, falling back to
// the cached list when the backend is unreachable.
func (s *NotificationService) ListNotifications(ctx context.Context, userID string) (notifications []domain.Notification, fromCache bool, err error) {
	notifications, err = s.backend.ListNotifications(ctx, userID)
	if err == nil {
		s.cache.Set(ctx, notifications, 0)
		s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventCacheRefreshed,
			Payload: events.CacheRefreshedPayload{Key: offline.KeyNotificationsList, Items: len(notifications)},
		})
		return notifications, false, nil
	}
	if !backend.IsUnavailable(err) {
		return nil, false, err
	}
	if cached, ok := s.cache.Get(ctx); ok {
		s.metrics.RecordOffline(observability.CounterCacheHit)
		s.logger.Info("serving notifications from offline cache", zap.Int("items", len(cached)))
		return cached, true, nil
	}
	s.metrics.RecordOffline(observability.CounterCacheMiss)
	return nil, false, apperrors.NewUpstreamUnavailable(err)
}
