package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/spec-kit/repairshop-service/internal/backend"
	"github.com/spec-kit/repairshop-service/internal/events"
	"github.com/spec-kit/repairshop-service/internal/observability"
)

func newTestMonitor(stub *stubBackend) *Monitor {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	return NewMonitor(stub, time.Minute, dispatcher, observability.NewMetrics(), zap.NewNop())
}

func TestMonitorReportsTransitions(t *testing.T) {
	stub := &stubBackend{pingErr: backend.ErrUnavailable}
	monitor := newTestMonitor(stub)
	ctx := context.Background()

	monitor.probe(ctx)
	assert.False(t, monitor.Online())
	assert.False(t, <-monitor.Updates())

	stub.pingErr = nil
	monitor.probe(ctx)
	assert.True(t, monitor.Online())
	assert.True(t, <-monitor.Updates())

	// No transition, no signal.
	monitor.probe(ctx)
	select {
	case <-monitor.Updates():
		t.Fatal("unexpected update without a state change")
	default:
	}
}

func TestMonitorCoalescesPendingUpdates(t *testing.T) {
	stub := &stubBackend{pingErr: backend.ErrUnavailable}
	monitor := newTestMonitor(stub)
	ctx := context.Background()

	monitor.probe(ctx)
	stub.pingErr = nil
	monitor.probe(ctx)

	// The undelivered offline transition was replaced by the newer
	// online one.
	assert.True(t, <-monitor.Updates())
}
