package storage

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/ned-tools/fai-report/internal/session"
)

// Factory builds a new empty session with the given ID
type Factory func(id string) *session.Session

// SessionStore keeps report sessions in memory for the lifetime of the process
type SessionStore struct {
	sessions map[string]*session.Session
	newFn    Factory
	mu       sync.RWMutex
}

func New(factory Factory) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session.Session),
		newFn:    factory,
	}
}

// Create starts a session under a fresh random ID
func (s *SessionStore) Create() *session.Session {
	sess := s.newFn(uuid.NewString())
	s.Set(sess.ID, sess)
	return sess
}

func (s *SessionStore) Get(sessionID string) (*session.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, exists := s.sessions[sessionID]
	return sess, exists
}

// Set stores sess under sessionID, replacing any session already there
func (s *SessionStore) Set(sessionID string, sess *session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = sess
}

// GetAll returns every session, oldest first
func (s *SessionStore) GetAll() []*session.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*session.Session, 0, len(s.sessions))
	for _, v := range s.sessions {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func (s *SessionStore) Delete(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	return exists
}
