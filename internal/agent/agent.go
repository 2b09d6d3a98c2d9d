package agent

import (
	"context"
	"sync"

	"gemini-chatbot-backend/internal/domain"
)

// Completer produces one model response for an ordered transcript.
type Completer interface {
	Generate(ctx context.Context, messages []domain.Message, cfg domain.RunConfig) (string, error)
}

// Agent pairs a fixed instruction prompt with a mutable turn history.
// Name and instructions never change after construction; the history is
// mutated only by Chat and ClearHistory.
type Agent struct {
	name         string
	instructions string
	client       Completer

	mu      sync.Mutex
	history []domain.Message
}

func New(client Completer, name, instructions string) *Agent {
	a := &Agent{
		name:         name,
		instructions: instructions,
		client:       client,
	}
	if instructions != "" {
		a.history = append(a.history, domain.Message{
			Role:    domain.RoleSystem,
			Content: instructions,
		})
	}
	return a
}

func (a *Agent) Name() string { return a.name }

func (a *Agent) Instructions() string { return a.instructions }

// Chat records the user turn, requests a completion over the full
// transcript and records the assistant turn. The lock is held across the
// completion call, so each conversation has a single writer and at most
// one in-flight completion. If the completion fails, the user turn is
// rolled back and the history is left exactly as it was.
func (a *Agent) Chat(ctx context.Context, userMessage string, cfg domain.RunConfig) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.history = append(a.history, domain.Message{
		Role:    domain.RoleUser,
		Content: userMessage,
	})

	transcript := append([]domain.Message(nil), a.history...)
	reply, err := a.client.Generate(ctx, transcript, cfg)
	if err != nil {
		a.history = a.history[:len(a.history)-1]
		return "", err
	}

	a.history = append(a.history, domain.Message{
		Role:    domain.RoleAssistant,
		Content: reply,
	})
	return reply, nil
}

// ClearHistory empties the conversation. With keepSystem set, a leading
// system message survives the clear.
func (a *Agent) ClearHistory(keepSystem bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if keepSystem && len(a.history) > 0 && a.history[0].Role == domain.RoleSystem {
		a.history = a.history[:1]
		return
	}
	a.history = nil
}

// History returns a copy of the transcript.
func (a *Agent) History() []domain.Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.Message(nil), a.history...)
}
