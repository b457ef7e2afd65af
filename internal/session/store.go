package session

import (
	"sync"

	"naomi/internal/domain"
)

// Store keeps per-session conversation context in memory. Turns within one
// session are processed in arrival order: Do holds a per-session lock for
// the duration of the callback, so concurrent requests for the same session
// serialize while distinct sessions proceed in parallel.
type Store struct {
	mu       sync.Mutex
	window   int
	sessions map[string]*entry
}

type entry struct {
	mu  sync.Mutex
	ctx domain.ConversationContext
}

// NewStore builds a store keeping at most window turns per session. Values
// of zero or less fall back to domain.ContextWindow.
func NewStore(window int) *Store {
	if window <= 0 {
		window = domain.ContextWindow
	}
	return &Store{window: window, sessions: make(map[string]*entry)}
}

func (s *Store) entryFor(sessionID string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[sessionID]
	if !ok {
		e = &entry{}
		s.sessions[sessionID] = e
	}
	return e
}

// Do runs fn with exclusive access to the session's context. Mutations made
// through the pointer are retained.
func (s *Store) Do(sessionID string, fn func(ctx *domain.ConversationContext)) {
	e := s.entryFor(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.ctx)
}

// Context returns a copy of the session's history, safe to read without
// holding the session lock.
func (s *Store) Context(sessionID string) domain.ConversationContext {
	e := s.entryFor(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()
	turns := make([]domain.ConversationTurn, len(e.ctx.Turns))
	copy(turns, e.ctx.Turns)
	return domain.ConversationContext{Turns: turns}
}

// Append records turns at the end of the session's history, evicting the
// oldest beyond the store's window.
func (s *Store) Append(sessionID string, turns ...domain.ConversationTurn) {
	s.Do(sessionID, func(ctx *domain.ConversationContext) {
		ctx.Turns = append(ctx.Turns, turns...)
		if len(ctx.Turns) > s.window {
			ctx.Turns = ctx.Turns[len(ctx.Turns)-s.window:]
		}
	})
}

// Reset drops the session's history entirely.
func (s *Store) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
