package offline

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/repairshop-service/internal/storage"
)

// KeyPrefix namespaces every offline entry in the persistence medium.
const KeyPrefix = "offline_cache_"

// NoExpiry marks an entry that must never lapse, such as the action
// queue. Pass it to SetWithTTL to write an envelope without expiresAt.
const NoExpiry time.Duration = -1

// entry is the stored envelope. Timestamps are epoch milliseconds.
// ExpiresAt of zero means the entry never expires.
type entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
	ExpiresAt int64           `json:"expiresAt,omitempty"`
}

func (e *entry) expired(now time.Time) bool {
	return e.ExpiresAt != 0 && now.UnixMilli() > e.ExpiresAt
}

// Store is the keyed cache over a persistence medium. Writes are
// best-effort: persistence failures are logged as warnings and
// swallowed, never surfaced to callers, so a broken local store can
// degrade the app but not crash it. Expiry lives entirely in the stored
// envelope; an expired entry is logically absent even while physically
// present, and the first Get that discovers one deletes it.
type Store struct {
	medium     storage.Medium
	logger     *zap.Logger
	defaultTTL time.Duration
	now        func() time.Time
}

// NewStore builds a cache store over the medium. A non-positive
// defaultTTL falls back to 24 hours.
func NewStore(medium storage.Medium, logger *zap.Logger, defaultTTL time.Duration) *Store {
	if defaultTTL <= 0 {
		defaultTTL = 24 * time.Hour
	}
	return &Store{
		medium:     medium,
		logger:     logger,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Set stores data under the logical key with the default TTL.
func (s *Store) Set(ctx context.Context, key string, data any) {
	s.SetWithTTL(ctx, key, data, s.defaultTTL)
}

// SetWithTTL stores data with an explicit TTL. Zero means the default;
// NoExpiry writes an envelope that never lapses. Last write wins.
func (s *Store) SetWithTTL(ctx context.Context, key string, data any, ttl time.Duration) {
	if ttl == 0 {
		ttl = s.defaultTTL
	}
	raw, err := json.Marshal(data)
	if err != nil {
		s.logger.Warn("cache set: marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	now := s.now()
	env := entry{Data: raw, Timestamp: now.UnixMilli()}
	if ttl != NoExpiry {
		env.ExpiresAt = now.Add(ttl).UnixMilli()
	}
	payload, err := json.Marshal(&env)
	if err != nil {
		s.logger.Warn("cache set: envelope marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.medium.Set(ctx, KeyPrefix+key, payload); err != nil {
		s.logger.Warn("cache set: persistence failed", zap.String("key", key), zap.Error(err))
	}
}

// Get loads the entry into dest, reporting whether a live value was
// found. Absent, corrupt and expired entries are all misses; an expired
// one is additionally deleted on discovery.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	env, ok := s.read(ctx, key)
	if !ok {
		return false
	}
	if env.expired(s.now()) {
		s.Remove(ctx, key)
		return false
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		s.logger.Warn("cache get: stale payload shape", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Remove deletes the entry, best-effort.
func (s *Store) Remove(ctx context.Context, key string) {
	if err := s.medium.Delete(ctx, KeyPrefix+key); err != nil {
		s.logger.Warn("cache remove failed", zap.String("key", key), zap.Error(err))
	}
}

// Clear deletes every offline entry, best-effort.
func (s *Store) Clear(ctx context.Context) {
	keys, err := s.medium.Keys(ctx, KeyPrefix)
	if err != nil {
		s.logger.Warn("cache clear: key listing failed", zap.Error(err))
		return
	}
	for _, key := range keys {
		if err := s.medium.Delete(ctx, key); err != nil {
			s.logger.Warn("cache clear: delete failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// IsExpired reports whether the entry has lapsed. Absent or unreadable
// entries count as expired. Unlike Get this is a pure diagnostic and
// never deletes anything.
func (s *Store) IsExpired(ctx context.Context, key string) bool {
	env, ok := s.read(ctx, key)
	if !ok {
		return true
	}
	return env.expired(s.now())
}

// Age returns how long ago the entry was written. ok is false when the
// entry is absent or unreadable.
func (s *Store) Age(ctx context.Context, key string) (time.Duration, bool) {
	env, ok := s.read(ctx, key)
	if !ok {
		return 0, false
	}
	return time.Duration(s.now().UnixMilli()-env.Timestamp) * time.Millisecond, true
}

// read fetches and decodes the envelope. All failure modes collapse to
// a miss; only genuine I/O failures are logged.
func (s *Store) read(ctx context.Context, key string) (*entry, bool) {
	raw, err := s.medium.Get(ctx, KeyPrefix+key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var env entry
	if err := json.Unmarshal(raw, &env); err != nil {
		s.logger.Warn("cache read: corrupt entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &env, true
}
