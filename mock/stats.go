// Package mock provides test doubles for the pulse interfaces.
package mock

import "sync"

// Stats is a pulse.Statter which records every count it receives, keyed by
// stat name plus tags.
type Stats struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewStats creates an empty Stats.
func NewStats() *Stats {
	return &Stats{counts: make(map[string]int64)}
}

// Count records the value under name joined with its tags.
func (s *Stats) Count(name string, value int64, rate float64, tags ...string) {
	key := name
	for _, tag := range tags {
		key += "|" + tag
	}
	s.mu.Lock()
	s.counts[key] += value
	s.mu.Unlock()
}

// Counted returns the total recorded under name joined with tags.
func (s *Stats) Counted(name string, tags ...string) int64 {
	key := name
	for _, tag := range tags {
		key += "|" + tag
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[key]
}
