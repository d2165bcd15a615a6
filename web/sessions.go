package web

import (
	"sync"
	"time"

	"cinematch/models"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
)

type sessionEntry struct {
	controller *models.SearchController
	lastSeen   time.Time
}

// SessionStore keeps one search controller per browser session.
// Sessions unused for longer than the idle timeout are evicted by Sweep.
type SessionStore struct {
	newController func() *models.SearchController
	idle          time.Duration

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// NewSessionStore creates a store that builds controllers with factory.
func NewSessionStore(factory func() *models.SearchController, idle time.Duration) *SessionStore {
	return &SessionStore{
		newController: factory,
		idle:          idle,
		sessions:      make(map[string]*sessionEntry),
	}
}

// Get returns the controller for id, creating a session when id is
// empty or unknown. The returned id is the one to hand back to the client.
func (s *SessionStore) Get(id string) (string, *models.SearchController) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[id]; ok && id != "" {
		e.lastSeen = now
		return id, e.controller
	}

	id = uuid.NewString()
	e := &sessionEntry{controller: s.newController(), lastSeen: now}
	s.sessions[id] = e
	models.ActiveSessions.Set(float64(len(s.sessions)))
	logger.Debug("Session created", "session_id", id)
	return id, e.controller
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle since before now minus the idle timeout.
// It returns the number evicted.
func (s *SessionStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.idle {
			delete(s.sessions, id)
			evicted++
		}
	}
	models.ActiveSessions.Set(float64(len(s.sessions)))
	if evicted > 0 {
		logger.Debug("Evicted idle sessions", "count", evicted)
	}
	return evicted
}

// StartSweeper runs Sweep periodically until stop is closed.
func (s *SessionStore) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				s.Sweep(now)
			case <-stop:
				return
			}
		}
	}()
}
