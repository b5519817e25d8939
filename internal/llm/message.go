package llm

import "github.com/klemjul/marachat/internal/chat"

type MessageRole string

const (
	Assistant MessageRole = "assistant"
	User      MessageRole = "user"
	System    MessageRole = "system"
)

type Message struct {
	Role    MessageRole
	Content string
}

// FromChat converts conversation turns to provider messages, model turns
// becoming assistant turns.
func FromChat(messages []chat.Message) []Message {
	out := make([]Message, 0, len(messages))
	for _, msg := range messages {
		role := User
		if msg.Role == chat.Model {
			role = Assistant
		}
		out = append(out, Message{Role: role, Content: msg.Text()})
	}
	return out
}
