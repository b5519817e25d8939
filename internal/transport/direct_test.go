package transport

import (
	"context"
	"errors"
	"testing"

	"github.com/klemjul/marachat/internal/chat"
	"github.com/klemjul/marachat/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLLMClient struct {
	mock.Mock
}

func (c *MockLLMClient) Send(ctx context.Context, messages []llm.Message) (*llm.LLMSendResponse, error) {
	args := c.Called(ctx, messages)
	res := args.Get(0)
	if res == nil {
		return nil, args.Error(1)
	}
	return res.(*llm.LLMSendResponse), args.Error(1)
}

func TestDirectSend_Success(t *testing.T) {
	client := new(MockLLMClient)
	client.On("Send", t.Context(), []llm.Message{
		{Role: llm.System, Content: "You are Mara."},
		{Role: llm.User, Content: "hi"},
	}).Return(&llm.LLMSendResponse{Content: "hello!"}, nil)

	reply, err := NewDirect(client, "You are Mara.", 0).Send(t.Context(), []chat.Message{chat.NewUserMessage("hi")})

	require.NoError(t, err)
	assert.Equal(t, chat.NewModelMessage("hello!"), *reply)
	client.AssertExpectations(t)
}

func TestDirectSend_Error(t *testing.T) {
	client := new(MockLLMClient)
	client.On("Send", mock.Anything, mock.Anything).Return(nil, errors.New("quota exceeded"))

	reply, err := NewDirect(client, "", 0).Send(t.Context(), []chat.Message{chat.NewUserMessage("hi")})

	assert.Nil(t, reply)
	assert.ErrorIs(t, err, chat.ErrTransport)
	assert.EqualError(t, err, "quota exceeded")
}

func TestDirectSend_EmptyContent(t *testing.T) {
	client := new(MockLLMClient)
	client.On("Send", mock.Anything, mock.Anything).Return(&llm.LLMSendResponse{}, nil)

	reply, err := NewDirect(client, "", 0).Send(t.Context(), []chat.Message{chat.NewUserMessage("hi")})

	assert.NoError(t, err)
	assert.Nil(t, reply)
}
