package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// Store keeps live sessions in memory, keyed by opaque id. Sessions are not
// persisted: a restart clears them, matching the single-sitting lifetime of
// a study session.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a new session under a fresh random id.
func (st *Store) Create() (*Session, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("session id: %w", err)
	}
	id := "s-" + hex.EncodeToString(buf)

	s := New(id)
	st.mu.Lock()
	st.sessions[id] = s
	st.mu.Unlock()
	return s, nil
}

func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

func (st *Store) Remove(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Purge drops sessions idle for longer than maxIdle and reports how many
// were removed.
func (st *Store) Purge(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if s.LastActive().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}
