package domain

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn. Position in a transcript encodes
// turn order; a message is never mutated once appended.
type Message struct {
	Role    string
	Content string
}
