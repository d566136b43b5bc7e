package sync

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/repairshop-service/internal/backend"
	"github.com/spec-kit/repairshop-service/internal/events"
	"github.com/spec-kit/repairshop-service/internal/observability"
)

// Monitor watches backend reachability by probing its health endpoint
// and turns the result into the boolean online/offline signal the rest
// of the app consumes.
type Monitor struct {
	backend    backend.Client
	interval   time.Duration
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger

	mu      sync.RWMutex
	online  bool
	started bool
	updates chan bool
}

// NewMonitor builds a monitor probing at the given cadence. Until the
// first probe completes the app is assumed online.
func NewMonitor(client backend.Client, interval time.Duration, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *Monitor {
	return &Monitor{
		backend:    client,
		interval:   interval,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
		online:     true,
		updates:    make(chan bool, 1),
	}
}

// Online reports the last observed connectivity state.
func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// Updates delivers connectivity transitions. Only state changes are
// sent; the channel holds one pending transition and drops older ones.
func (m *Monitor) Updates() <-chan bool {
	return m.updates
}

// Run probes until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

func (m *Monitor) probe(ctx context.Context) {
	err := m.backend.Ping(ctx)
	online := err == nil

	m.mu.Lock()
	changed := online != m.online || !m.started
	m.started = true
	m.online = online
	m.mu.Unlock()

	if !changed {
		return
	}
	if online {
		m.metrics.RecordOffline(observability.CounterCameOnline)
		m.logger.Info("backend reachable")
	} else {
		m.metrics.RecordOffline(observability.CounterWentOffline)
		m.logger.Warn("backend unreachable", zap.Error(err))
	}
	m.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventConnectivityChanged,
		Payload: events.ConnectivityPayload{Online: online},
	})

	// Replace any undelivered transition with the latest one.
	select {
	case <-m.updates:
	default:
	}
	m.updates <- online
}
