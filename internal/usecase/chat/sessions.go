package chat

import (
	"sync"

	"gemini-chatbot-backend/internal/agent"
)

// sessionStore owns the per-session agents. Each logical conversation
// maps to exactly one agent, so concurrent chats on different sessions
// never share history.
type sessionStore struct {
	mu     sync.Mutex
	agents map[string]*agent.Agent
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		agents: make(map[string]*agent.Agent),
	}
}

func (s *sessionStore) get(id string, build func() *agent.Agent) *agent.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.agents[id]
	if !ok {
		a = build()
		s.agents[id] = a
	}
	return a
}

func (s *sessionStore) lookup(id string) (*agent.Agent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.agents[id]
	return a, ok
}
