package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for the HTTP surface and
// the offline layer.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	offlineCount map[string]int64
}

// Offline counter names.
const (
	CounterCacheHit    = "cache_hit"
	CounterCacheMiss   = "cache_miss"
	CounterEnqueued    = "queue_enqueued"
	CounterFlushed     = "queue_flushed"
	CounterRetried     = "queue_retried"
	CounterWentOffline = "went_offline"
	CounterCameOnline  = "came_online"
)

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		offlineCount: make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordOffline increments one of the offline layer counters.
func (m *Metrics) RecordOffline(counter string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offlineCount[counter]++
}

// OfflineSnapshot copies the offline counters for reporting.
func (m *Metrics) OfflineSnapshot() map[string]int64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.offlineCount))
	for k, v := range m.offlineCount {
		out[k] = v
	}
	return out
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
