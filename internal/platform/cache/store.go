// Package cache is the in-process read-through cache fronting the standings
// aggregator. Entries are immutable once inserted and the whole store is
// rebuildable from source rows at any time.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mecajames/NewMECAV2-sub004/internal/platform/resilience"
)

type entry struct {
	value    any
	deadline time.Time
}

// expired reports whether the entry's deadline has passed. A zero deadline
// never expires.
func (e entry) expired(now time.Time) bool {
	return !e.deadline.IsZero() && !e.deadline.After(now)
}

type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	flight  resilience.SingleFlight
}

// NewStore builds a store whose entries expire after ttl; ttl <= 0 keeps
// entries until the next Clear.
func NewStore(ttl time.Duration) *Store {
	return &Store{entries: map[string]entry{}, ttl: ttl}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	switch {
	case !ok:
		return nil, false
	case e.expired(time.Now()):
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	default:
		return e.value, true
	}
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	e := entry{value: value}
	if s.ttl > 0 {
		e.deadline = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = e
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Clear wipes every entry. Any write to results or result-team links must
// call this; there is no fine-grained invalidation by season or format.
func (s *Store) Clear(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = map[string]entry{}
}

// Len reports the number of live entries, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value for key, computing and storing it via
// loader on a miss. Concurrent misses for the same key collapse into one
// loader call. Loader failures are returned but never cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if hit, ok := s.Get(ctx, key); ok {
		return hit, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		// A follower that lost the race may already find the leader's
		// value in place.
		if hit, ok := s.Get(ctx, key); ok {
			return hit, nil
		}

		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}
