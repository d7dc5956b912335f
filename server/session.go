package server

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"crossway/game"
)

// Session is one hosted game. Handlers serialize access through mu so
// concurrent requests against the same game cannot interleave moves.
type Session struct {
	ID      string
	Created time.Time

	mu    sync.Mutex
	state *game.GameState
}

// WithState runs fn while holding the session lock.
func (s *Session) WithState(fn func(state *game.GameState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// Store is the process-wide session registry.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

func (st *Store) Create(boardSize int) *Session {
	session := &Session{
		ID:      uuid.NewString(),
		Created: time.Now(),
		state:   game.NewGameState(boardSize),
	}

	st.mu.Lock()
	st.sessions[session.ID] = session
	st.mu.Unlock()
	return session
}

func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	session, ok := st.sessions[id]
	return session, ok
}

func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// List returns sessions ordered by creation time.
func (st *Store) List() []*Session {
	st.mu.RLock()
	sessions := make([]*Session, 0, len(st.sessions))
	for _, session := range st.sessions {
		sessions = append(sessions, session)
	}
	st.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Created.Before(sessions[j].Created)
	})
	return sessions
}
