package quota

import (
	"context"
	"sync"
	"time"
)

// Store is the key-value persistence collaborator for quota records. Get
// returns (nil, nil) when no record exists; implementations treat corrupt
// records the same way so a bad store never blocks the user.
type Store interface {
	Get(ctx context.Context, key string) (*DailyQuota, error)
	Put(ctx context.Context, key string, q *DailyQuota, ttl time.Duration) error
}

// MemoryStore is an in-process Store for tests and single-node setups.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]DailyQuota
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]DailyQuota)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*DailyQuota, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, q *DailyQuota, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = *q
	return nil
}
