package chat

import "strings"

type Role string

const (
	User  Role = "user"
	Model Role = "model"
)

type Part struct {
	Text string `json:"text" validate:"required"`
}

// Message is one turn of the conversation. Parts always holds a single
// element in practice.
type Message struct {
	Role  Role   `json:"role" validate:"required,oneof=user model"`
	Parts []Part `json:"parts" validate:"required,min=1,dive"`
}

func NewUserMessage(text string) Message {
	return Message{Role: User, Parts: []Part{{Text: text}}}
}

func NewModelMessage(text string) Message {
	return Message{Role: Model, Parts: []Part{{Text: text}}}
}

// Text joins all parts with a blank line.
func (m Message) Text() string {
	texts := make([]string, len(m.Parts))
	for i, p := range m.Parts {
		texts[i] = p.Text
	}
	return strings.Join(texts, "\n\n")
}

func (m Message) IsEmpty() bool {
	return len(m.Parts) == 0
}

func (m Message) clone() Message {
	parts := make([]Part, len(m.Parts))
	copy(parts, m.Parts)
	return Message{Role: m.Role, Parts: parts}
}

func cloneMessages(messages []Message) []Message {
	out := make([]Message, len(messages))
	for i, msg := range messages {
		out[i] = msg.clone()
	}
	return out
}
