package chat

import (
	"context"
	"errors"
	"log"
	"strings"

	"gemini-chatbot-backend/internal/agent"
	"gemini-chatbot-backend/internal/domain"
)

var ErrEmptyMessage = errors.New("empty message")

// Result is one completed exchange.
type Result struct {
	Reply     string
	AgentName string
	AgentType string
}

// AgentInfo describes the default agent and the catalog.
type AgentInfo struct {
	Name           string
	Model          string
	Instructions   string
	AvailableTypes []string
}

// Service routes chat requests to agents. The default agent is built once
// and shared by all basic requests without a session; sessions get their
// own agents; specialized requests get a fresh agent each time and no
// cross-request memory.
type Service struct {
	client  agent.Completer
	catalog *agent.Catalog
	model   string
	run     domain.RunConfig

	defaultAgent *agent.Agent
	sessions     *sessionStore
}

func NewService(client agent.Completer, catalog *agent.Catalog, model string, run domain.RunConfig) *Service {
	profile, _ := catalog.Resolve(agent.TypeBasic)
	return &Service{
		client:       client,
		catalog:      catalog,
		model:        model,
		run:          run,
		defaultAgent: agent.New(client, profile.Name, profile.Instructions),
		sessions:     newSessionStore(),
	}
}

// Chat validates the message, picks an agent for the requested type and
// session, and runs one exchange. Unknown agent types fall back to the
// creative profile; the substitution is logged and the resolved type is
// reported in the result.
func (s *Service) Chat(ctx context.Context, sessionID, agentType, message string) (Result, error) {
	if strings.TrimSpace(message) == "" {
		return Result{}, ErrEmptyMessage
	}

	if agentType == "" {
		agentType = agent.TypeBasic
	}
	profile, resolved := s.catalog.Resolve(agentType)
	if resolved != agentType {
		log.Printf("unknown agent type %q, serving with %q", agentType, resolved)
	}

	var a *agent.Agent
	switch {
	case resolved == agent.TypeBasic && sessionID == "":
		a = s.defaultAgent
	case resolved == agent.TypeBasic:
		a = s.sessions.get(sessionID, func() *agent.Agent {
			return agent.New(s.client, profile.Name, profile.Instructions)
		})
	default:
		a = agent.New(s.client, profile.Name, profile.Instructions)
	}

	if s.run.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.run.Timeout)
		defer cancel()
	}

	reply, err := a.Chat(ctx, message, s.run)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Reply:     reply,
		AgentName: a.Name(),
		AgentType: resolved,
	}, nil
}

// ResetSession clears a session's conversation. Unknown sessions are a
// no-op.
func (s *Service) ResetSession(sessionID string, keepSystem bool) {
	if a, ok := s.sessions.lookup(sessionID); ok {
		a.ClearHistory(keepSystem)
	}
}

func (s *Service) Info() AgentInfo {
	return AgentInfo{
		Name:           s.defaultAgent.Name(),
		Model:          s.model,
		Instructions:   s.defaultAgent.Instructions(),
		AvailableTypes: s.catalog.Types(),
	}
}

func (s *Service) Model() string { return s.model }

// DefaultAgent exposes the shared basic agent.
func (s *Service) DefaultAgent() *agent.Agent { return s.defaultAgent }
