package common

import (
	"sync"
	"time"
)

// CacheSlot is a single-entry cache: one string value plus an absolute
// expiry instant. The slot is "fresh" while a value is present and the
// expiry has not passed; otherwise it reads as empty.
//
// The mutex guards only slot reads and writes. It is never held across a
// network call, so concurrent cache misses still fan out into independent
// fetches.
type CacheSlot struct {
	mu        sync.Mutex
	value     string
	hasValue  bool
	expiresAt time.Time
}

// Get returns the cached value if the slot is fresh.
func (s *CacheSlot) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasValue || !time.Now().Before(s.expiresAt) {
		return "", false
	}
	return s.value, true
}

// Set overwrites the slot with value, fresh for the next ttl.
func (s *CacheSlot) Set(value string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.hasValue = true
	s.expiresAt = time.Now().Add(ttl)
}

// Clear resets the slot to empty.
func (s *CacheSlot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = ""
	s.hasValue = false
	s.expiresAt = time.Time{}
}
