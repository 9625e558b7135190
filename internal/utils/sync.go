// Copyright (c) 2025 @AmarnathCJD

package utils

import (
	"sort"
	"sync"
)

// SyncMap is a read-mostly map guarded by a RWMutex.
type SyncMap[K comparable, V any] struct {
	mutex sync.RWMutex
	m     map[K]V
}

func NewSyncMap[K comparable, V any]() *SyncMap[K, V] {
	return &SyncMap[K, V]{m: make(map[K]V)}
}

func (s *SyncMap[K, V]) Has(key K) bool {
	s.mutex.RLock()
	_, ok := s.m[key]
	s.mutex.RUnlock()
	return ok
}

func (s *SyncMap[K, V]) Get(key K) (V, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

// Add stores value under key only if key is absent and reports whether it did.
func (s *SyncMap[K, V]) Add(key K, value V) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.m[key]; ok {
		return false
	}
	s.m[key] = value
	return true
}

func (s *SyncMap[K, V]) Set(key K, value V) {
	s.mutex.Lock()
	s.m[key] = value
	s.mutex.Unlock()
}

func (s *SyncMap[K, V]) Delete(key K) bool {
	s.mutex.Lock()
	_, ok := s.m[key]
	delete(s.m, key)
	s.mutex.Unlock()
	return ok
}

func (s *SyncMap[K, V]) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.m)
}

func (s *SyncMap[K, V]) Keys() []K {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	keys := make([]K, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	return keys
}

// SortedKeys returns the keys of a string-keyed map in lexical order.
func SortedKeys[V any](s *SyncMap[string, V]) []string {
	keys := s.Keys()
	sort.Strings(keys)
	return keys
}
