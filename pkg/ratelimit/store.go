package ratelimit

import (
	"sync"
	"time"
)

// DefaultLimit is how many timestamps MemoryStore keeps per key.
const DefaultLimit = 2

// Snapshot is a point-in-time copy of the request timestamps recorded for a
// session, oldest first.
type Snapshot []time.Time

// Last returns the most recent timestamp, or the zero time if none exist.
func (s Snapshot) Last() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1]
}

// TimeStore records request timestamps keyed by session.
type TimeStore interface {
	Get(key string) Snapshot
	Push(key string, t time.Time)
	Reset(key string)
}

// MemoryStore is an in-process TimeStore safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	limit int
	times map[string][]time.Time
}

// NewMemoryStore creates a store keeping at most limit timestamps per key.
// A non-positive limit falls back to DefaultLimit.
func NewMemoryStore(limit int) *MemoryStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &MemoryStore{
		limit: limit,
		times: make(map[string][]time.Time),
	}
}

// Get returns a copy of the timestamps for key.
func (s *MemoryStore) Get(key string) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.times[key]
	out := make(Snapshot, len(src))
	copy(out, src)
	return out
}

// Push appends t for key, dropping the oldest entry once the limit is reached.
func (s *MemoryStore) Push(key string, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := append(s.times[key], t)
	if len(ts) > s.limit {
		ts = ts[len(ts)-s.limit:]
	}
	s.times[key] = ts
}

// Reset forgets every timestamp for key.
func (s *MemoryStore) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.times, key)
}
