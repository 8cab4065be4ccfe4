package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/dom/unique-nails/internal/store"
)

// Store keeps everything in process memory. Used for tests and local runs
// without a Redis instance.
type Store struct {
	mu      sync.RWMutex
	strings map[string]string
	lists   map[string][]string
	sets    map[string]map[string]struct{}
}

func New() *Store {
	return &Store{
		strings: make(map[string]string),
		lists:   make(map[string][]string),
		sets:    make(map[string]map[string]struct{}),
	}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.strings[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.lists, key)
	delete(s.sets, key)
	s.strings[key] = value
	return nil
}

func (s *Store) SetNX(ctx context.Context, key, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.existsLocked(key) {
		return false, nil
	}
	s.strings[key] = value
	return true, nil
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		delete(s.strings, k)
		delete(s.lists, k)
		delete(s.sets, k)
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.existsLocked(key), nil
}

func (s *Store) existsLocked(key string) bool {
	if _, ok := s.strings[key]; ok {
		return true
	}
	if _, ok := s.lists[key]; ok {
		return true
	}
	_, ok := s.sets[key]
	return ok
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for k := range s.strings {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	for k := range s.lists {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	for k := range s.sets {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (s *Store) SAdd(ctx context.Context, key, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[key]
	if !ok {
		set = make(map[string]struct{})
		s.sets[key] = set
	}
	set[member] = struct{}{}
	return nil
}

func (s *Store) SRem(ctx context.Context, key, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[key]
	if !ok {
		return nil
	}
	delete(set, member)
	if len(set) == 0 {
		delete(s.sets, key)
	}
	return nil
}

func (s *Store) SMembers(ctx context.Context, key string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	members := make([]string, 0, len(s.sets[key]))
	for m := range s.sets[key] {
		members = append(members, m)
	}
	return members, nil
}

func (s *Store) RPush(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lists[key] = append(s.lists[key], value)
	return nil
}

func (s *Store) LRem(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.lists[key]
	if !ok {
		return nil
	}
	kept := list[:0]
	for _, v := range list {
		if v != value {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		delete(s.lists, key)
		return nil
	}
	s.lists[key] = kept
	return nil
}

func (s *Store) LRange(ctx context.Context, key string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.lists[key]))
	copy(out, s.lists[key])
	return out, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return nil
}
