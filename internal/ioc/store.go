package ioc

import (
	"sync"
	"time"

	"github.com/willf/bloom"
)

// Store holds the authoritative in-memory indicator collection plus fetch
// telemetry. The collection is replaced wholesale by Replace after a merge
// completes, so readers observe either the fully-old or fully-new state.
type Store struct {
	mu         sync.RWMutex
	collection map[string]Indicator
	seen       *bloom.BloomFilter // dedup keys, fast negative lookups
	stats      FetchStats
	lastFetch  *time.Time
}

func NewStore() *Store {
	return &Store{
		collection: make(map[string]Indicator),
		seen:       bloom.New(1<<20, 5),
	}
}

// Collection returns the current backing map. Callers must treat it as
// read-only; Replace installs a fresh map and never mutates a published one.
func (s *Store) Collection() map[string]Indicator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collection
}

// Snapshot returns the indicators as a freely mutable slice.
func (s *Store) Snapshot() []Indicator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Indicator, 0, len(s.collection))
	for _, in := range s.collection {
		out = append(out, in)
	}
	return out
}

// Replace swaps in a new collection in a single assignment.
func (s *Store) Replace(collection map[string]Indicator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection = collection
	for key := range collection {
		s.seen.Add([]byte(key))
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collection)
}

// Lookup finds the indicator for (source, value). The bloom filter screens
// out definite misses without touching the map.
func (s *Store) Lookup(source, value string) (Indicator, bool) {
	key := source + "|" + value
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.seen.Test([]byte(key)) {
		return Indicator{}, false
	}
	in, ok := s.collection[key]
	return in, ok
}

// Clear empties the collection. Fetch telemetry is kept; use ResetStats.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection = make(map[string]Indicator)
	s.seen.ClearAll()
}

func (s *Store) RecordSuccess(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.TotalFetches++
	s.stats.SuccessfulFetches++
	s.stats.LastError = ""
	s.lastFetch = &t
}

func (s *Store) RecordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.TotalFetches++
	s.stats.FailedFetches++
	if err != nil {
		s.stats.LastError = err.Error()
	}
}

func (s *Store) Stats() FetchStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// LastFetchTime returns the time of the last successful refresh, or nil.
func (s *Store) LastFetchTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastFetch == nil {
		return nil
	}
	t := *s.lastFetch
	return &t
}

func (s *Store) ResetStats() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = FetchStats{}
	s.lastFetch = nil
}
