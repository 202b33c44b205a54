package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	userID  string
	expires time.Time
}

// SessionStore maps organizer session tokens to user IDs. It lives in
// process memory, so sessions do not survive a restart.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]session
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]session),
		now:      time.Now,
	}
}

// Create starts a session for userID and returns its token and expiry.
func (s *SessionStore) Create(userID string) (string, time.Time) {
	token := uuid.NewString()
	expires := s.now().Add(s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = session{userID: userID, expires: expires}
	return token, expires
}

// Lookup returns the user for token. Expired sessions are removed.
func (s *SessionStore) Lookup(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return "", false
	}
	if s.now().After(sess.expires) {
		delete(s.sessions, token)
		return "", false
	}
	return sess.userID, true
}

func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
