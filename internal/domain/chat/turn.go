package chat

import openai "github.com/sashabaranov/go-openai"

// Turn is one conversation entry, immutable once created.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

// CloneHistory returns a defensive copy so callers never alias shared
// backing arrays.
func CloneHistory(history []Turn) []Turn {
	if history == nil {
		return nil
	}
	cloned := make([]Turn, len(history))
	copy(cloned, history)
	return cloned
}
