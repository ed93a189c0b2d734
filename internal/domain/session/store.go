package session

import (
	"sync"
	"time"

	"movision-server/internal/domain/chat"
)

type record struct {
	history    []chat.Turn
	lastAccess time.Time
}

// Store keeps per-session conversation history in memory with idle-timeout
// eviction. Concurrent updates to the same session id are last-write-wins;
// the usage model is one serialized caller per session.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*record
	idleTimeout time.Duration

	now func() time.Time
}

func NewStore(idleTimeout time.Duration) *Store {
	return &Store{
		sessions:    make(map[string]*record),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Get returns the stored history for sessionID and refreshes the idle
// clock. An expired record reports a miss but is left for the sweeper.
func (s *Store) Get(sessionID string) ([]chat.Turn, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(rec.lastAccess) >= s.idleTimeout {
		return nil, false
	}
	rec.lastAccess = now
	return chat.CloneHistory(rec.history), true
}

// Update replaces the stored history for sessionID, inserting a fresh
// record if absent.
func (s *Store) Update(sessionID string, history []chat.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = &record{
		history:    chat.CloneHistory(history),
		lastAccess: s.now(),
	}
}

// Clear removes the session immediately.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Count returns the number of tracked sessions, expired or not.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep deletes sessions whose idle timeout has elapsed and returns how
// many were removed. Expiry is re-checked under the lock so a session
// refreshed between scan and delete survives.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, rec := range s.sessions {
		if now.Sub(rec.lastAccess) >= s.idleTimeout {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
