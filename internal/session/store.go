package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/takara45/ai-seo-homepage/internal/publish"
)

var ErrNotFound = errors.New("session: not found")

// Store keeps wizard sessions in memory, keyed by generated id. There is no
// persistence layer; a restart forgets every session.
type Store struct {
	suggester TemplateSuggester
	assembler Assembler
	newHost   func() publish.Host

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore(suggester TemplateSuggester, assembler Assembler, newHost func() publish.Host) *Store {
	return &Store{
		suggester: suggester,
		assembler: assembler,
		newHost:   newHost,
		sessions:  map[string]*Session{},
	}
}

// Create starts a new wizard session at the first interview question.
func (st *Store) Create() *Session {
	s := newSession(uuid.New().String(), st.suggester, st.assembler, st.newHost())
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get looks a session up by id.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete discards a session.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
