package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/part-describer/internal/domain/description"
)

type listKey struct {
	session string
	kind    description.ListKind
}

type sessionList struct {
	entries   []description.Entry
	expiresAt time.Time
}

// MemoryStore keeps session lists in process memory. Lists untouched for
// longer than the TTL are dropped when next read or written, and abandoned
// lists are swept at most once per TTL.
type MemoryStore struct {
	mu        sync.RWMutex
	ttl       time.Duration
	lists     map[listKey]sessionList
	lastSweep time.Time
	now       func() time.Time
}

// NewMemoryStore constructs a store backed by process memory. A zero ttl keeps
// lists for the life of the process.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:   ttl,
		lists: make(map[listKey]sessionList),
		now:   time.Now,
	}
}

// Push prepends entry and trims the list to limit.
func (s *MemoryStore) Push(_ context.Context, sessionID string, kind description.ListKind, entry description.Entry, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweepLocked(now)

	key := listKey{session: sessionID, kind: kind}
	current := s.liveLocked(key, now)
	size := len(current) + 1
	if limit > 0 && size > limit {
		size = limit
	}
	next := make([]description.Entry, 0, size)
	next = append(next, entry)
	next = append(next, current[:size-1]...)
	s.lists[key] = sessionList{entries: next, expiresAt: s.expiry(now)}
	return nil
}

// List returns a copy of the list, newest first.
func (s *MemoryStore) List(_ context.Context, sessionID string, kind description.ListKind) ([]description.Entry, error) {
	s.mu.RLock()
	list, ok := s.lists[listKey{session: sessionID, kind: kind}]
	s.mu.RUnlock()
	if !ok || hasExpired(list.expiresAt, s.now()) {
		return []description.Entry{}, nil
	}
	out := make([]description.Entry, len(list.entries))
	copy(out, list.entries)
	return out, nil
}

// Delete removes the entry at index.
func (s *MemoryStore) Delete(_ context.Context, sessionID string, kind description.ListKind, index int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweepLocked(now)

	key := listKey{session: sessionID, kind: kind}
	current := s.liveLocked(key, now)
	if index < 0 || index >= len(current) {
		return false, nil
	}
	next := make([]description.Entry, 0, len(current)-1)
	next = append(next, current[:index]...)
	next = append(next, current[index+1:]...)
	if len(next) == 0 {
		delete(s.lists, key)
		return true, nil
	}
	s.lists[key] = sessionList{entries: next, expiresAt: s.expiry(now)}
	return true, nil
}

func (s *MemoryStore) expiry(now time.Time) time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(s.ttl)
}

// liveLocked returns the entries for key, dropping the list if it expired.
func (s *MemoryStore) liveLocked(key listKey, now time.Time) []description.Entry {
	list, ok := s.lists[key]
	if !ok {
		return nil
	}
	if hasExpired(list.expiresAt, now) {
		delete(s.lists, key)
		return nil
	}
	return list.entries
}

func (s *MemoryStore) sweepLocked(now time.Time) {
	if s.ttl <= 0 || now.Sub(s.lastSweep) < s.ttl {
		return
	}
	s.lastSweep = now
	for key, list := range s.lists {
		if hasExpired(list.expiresAt, now) {
			delete(s.lists, key)
		}
	}
}

func hasExpired(ts, now time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(now)
}

var _ description.Store = (*MemoryStore)(nil)
