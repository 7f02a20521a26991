// Package session provides the ephemeral snapshot store backing the
// report hand-off. Snapshots live in memory under a generated key and
// expire after a TTL; durable archiving is a separate, optional port.
package session

import (
	"sync"
	"time"

	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/core"
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/session"
)

type entry struct {
	snap     session.Snapshot
	storedAt time.Time
}

// SnapshotStore is a TTL-bounded in-memory snapshot map.
type SnapshotStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[core.SnapshotID]entry
	now     func() time.Time
}

// NewSnapshotStore creates a store whose snapshots expire after ttl.
func NewSnapshotStore(ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{
		ttl:     ttl,
		entries: make(map[core.SnapshotID]entry),
		now:     time.Now,
	}
}

// Put stores a snapshot under its own ID.
func (s *SnapshotStore) Put(snap session.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[snap.ID] = entry{snap: snap, storedAt: s.now()}
}

// Get returns a snapshot if it exists and has not expired.
func (s *SnapshotStore) Get(id core.SnapshotID) (session.Snapshot, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok || s.now().Sub(e.storedAt) > s.ttl {
		return session.Snapshot{}, core.ErrSnapshotNotFound
	}
	return e.snap, nil
}

// Delete removes a snapshot.
func (s *SnapshotStore) Delete(id core.SnapshotID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len reports the number of live (possibly expired) entries.
func (s *SnapshotStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// CleanupExpired drops entries older than the TTL and returns the count
// removed.
func (s *SnapshotStore) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	cutoff := s.now().Add(-s.ttl)
	for id, e := range s.entries {
		if e.storedAt.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// StartJanitor runs CleanupExpired on the given interval until stop is
// closed.
func (s *SnapshotStore) StartJanitor(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.CleanupExpired()
			case <-stop:
				return
			}
		}
	}()
}
