package reallocation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// OpenSessions is the number of sessions open in all stores.
var OpenSessions = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "reallocation_sessions_open",
		Help: "How many reallocation sessions are currently open.",
	},
)

// Store keeps the open sessions of this process.
//
// With an idle timeout, sessions that have not been retrieved for longer
// than the timeout expire.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	idle     time.Duration
}

func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*Session)}
}

// SetIdleTimeout sets after how long without use a session expires.
// Zero keeps sessions until they are closed.
func (s *Store) SetIdleTimeout(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idle = d
}

// Open creates a new session and keeps it until it is closed or expires.
func (s *Store) Open(lookup Lookup) *Session {
	session := NewSession(lookup)

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	OpenSessions.Inc()

	return session
}

// Get returns the session with the ID and marks it as used.
func (s *Store) Get(id uuid.UUID) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.live(id, time.Now())
	if !ok {
		return nil, false
	}

	session.touch(time.Now())
	return session, true
}

// Take removes the session from the store and returns it. Only one caller
// can take a session. Use Put to return it.
func (s *Store) Take(id uuid.UUID) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.live(id, time.Now())
	if !ok {
		return nil, false
	}

	s.remove(id)
	return session, true
}

// Put adds a session that was taken back to the store.
func (s *Store) Put(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; ok {
		return
	}

	session.touch(time.Now())
	s.sessions[session.ID] = session
	OpenSessions.Inc()
}

// Close discards a session. It reports if the session existed.
func (s *Store) Close(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[id]
	if ok {
		s.remove(id)
	}
	return ok
}

// Expire discards all sessions that have been idle for longer than the
// idle timeout at now. It returns the number of discarded sessions.
func (s *Store) Expire(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired int
	for id, session := range s.sessions {
		if s.expired(session, now) {
			s.remove(id)
			expired++
		}
	}
	return expired
}

// Run expires idle sessions every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.Expire(now); n > 0 {
				log.Debug().Int("count", n).Msg("expired idle reallocation sessions")
			}
		}
	}
}

// Len returns the number of open sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// live returns the session if it exists and has not expired. Expired
// sessions are removed. The lock must be held.
func (s *Store) live(id uuid.UUID, now time.Time) (*Session, bool) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, false
	}

	if s.expired(session, now) {
		s.remove(id)
		return nil, false
	}

	return session, true
}

func (s *Store) expired(session *Session, now time.Time) bool {
	return s.idle > 0 && now.Sub(session.LastUsed()) > s.idle
}

func (s *Store) remove(id uuid.UUID) {
	delete(s.sessions, id)
	OpenSessions.Dec()
}
