package utils

import (
	"sync"
)

type null = struct{}

// SyncSet is a set of keys safe for concurrent use.
type SyncSet[T comparable] struct {
	mu sync.RWMutex
	m  map[T]null
}

func NewSyncSet[T comparable](keys ...T) *SyncSet[T] {
	s := &SyncSet[T]{m: make(map[T]null, len(keys))}
	for _, k := range keys {
		s.m[k] = null{}
	}
	return s
}

// Add inserts key and reports whether it was absent.
func (s *SyncSet[T]) Add(key T) bool {
	s.mu.Lock()
	prevLen := len(s.m)
	s.m[key] = null{}
	cLen := len(s.m)
	s.mu.Unlock()
	return prevLen != cLen
}

func (s *SyncSet[T]) Has(key T) bool {
	s.mu.RLock()
	_, ok := s.m[key]
	s.mu.RUnlock()
	return ok
}

func (s *SyncSet[T]) Delete(key T) {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
}

func (s *SyncSet[T]) Len() int {
	s.mu.RLock()
	c := len(s.m)
	s.mu.RUnlock()
	return c
}
