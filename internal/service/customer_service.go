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

// CustomerService serves the customer directory, cache-first when the
// backend is away.
type CustomerService struct {
	backend    backend.Client
	cache      *offline.CustomerListCache
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewCustomerService constructs the service.
func NewCustomerService(client backend.Client, cache *offline.CustomerListCache, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		backend:    client,
		cache:      cache,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
	}
}

// ListCustomers returns the directory, falling back to the cached copy
// when the backend is unreachable.
func (s *CustomerService) ListCustomers(ctx context.Context) (customers []domain.Customer, fromCache bool, err error) {
	customers, err = s.backend.ListCustomers(ctx)
	if err == nil {
		s.cache.Set(ctx, customers, 0)
		s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventCacheRefreshed,
			Payload: events.CacheRefreshedPayload{Key: offline.KeyCustomersList, Items: len(customers)},
		})
		return customers, false, nil
	}
	if !backend.IsUnavailable(err) {
		return nil, false, err
	}
	if cached, ok := s.cache.Get(ctx); ok {
		s.metrics.RecordOffline(observability.CounterCacheHit)
		s.logger.Info("serving customers from offline cache", zap.Int("items", len(cached)))
		return cached, true, nil
	}
	s.metrics.RecordOffline(observability.CounterCacheMiss)
	return nil, false, apperrors.NewUpstreamUnavailable(err)
}
