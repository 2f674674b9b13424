package service

import (
	"sync"
	"time"
)

// session holds one user's server-side tokens. The dashboard client never
// sees Spotify credentials.
type session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// store is the in-memory session map keyed by user id
type store struct {
	mu       sync.Mutex
	sessions map[string]session
}

func newStore() *store {
	return &store{sessions: make(map[string]session)}
}

func (s *store) get(userID string) (session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

func (s *store) put(userID string, sess session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sess
}

func (s *store) delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
