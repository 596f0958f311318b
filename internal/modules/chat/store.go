// README: In-memory conversation store; sessions live only as long as the process.
package chat

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"roteiro/internal/service"
)

type session struct {
	messages []Message
	touched  time.Time
}

// Store keeps an ordered message list per session.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*session), now: time.Now}
}

// Create starts a session seeded with the greeting and returns its id.
func (s *Store) Create() string {
	id := uuid.NewString()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &session{
		messages: []Message{{
			ID:        uuid.NewString(),
			Text:      GreetingText,
			Kind:      service.KindText,
			CreatedAt: now,
		}},
		touched: now,
	}
	return id
}

// Exists reports whether id names a live session.
func (s *Store) Exists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	return ok
}

// Append adds m to the session, filling ID and CreatedAt. It reports false for unknown sessions.
func (s *Store) Append(id string, m Message) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Message{}, false
	}
	m.ID = uuid.NewString()
	m.CreatedAt = s.now()
	sess.messages = append(sess.messages, m)
	sess.touched = m.CreatedAt
	return m, true
}

// Messages returns a copy of the session's messages.
func (s *Store) Messages(id string) ([]Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	out := make([]Message, len(sess.messages))
	copy(out, sess.messages)
	return out, true
}

// Prune drops sessions idle for longer than ttl and returns how many were removed.
func (s *Store) Prune(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if sess.touched.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// RunJanitor prunes idle sessions every interval until ctx is done.
func (s *Store) RunJanitor(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Prune(ttl); n > 0 {
				log.Printf("chat: pruned %d idle sessions", n)
			}
		}
	}
}
