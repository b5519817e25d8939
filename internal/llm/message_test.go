package llm

import (
	"testing"

	"github.com/klemjul/marachat/internal/chat"
	"github.com/stretchr/testify/assert"
)

func TestFromChat(t *testing.T) {
	input := []chat.Message{
		chat.NewUserMessage("오늘 재미난 일이 있었어!"),
		chat.NewModelMessage("정말? 무슨 일이었는데?"),
		{Role: chat.User, Parts: []chat.Part{{Text: "first"}, {Text: "second"}}},
	}

	expected := []Message{
		{Role: User, Content: "오늘 재미난 일이 있었어!"},
		{Role: Assistant, Content: "정말? 무슨 일이었는데?"},
		{Role: User, Content: "first\n\nsecond"},
	}

	assert.Equal(t, expected, FromChat(input))
}
