package transport

import (
	"context"

	"github.com/klemjul/marachat/internal/chat"
	"github.com/klemjul/marachat/internal/llm"
)

// Direct sends the history to an LLM provider in-process, without going
// through a completion endpoint.
type Direct struct {
	client       llm.LLMClient
	systemPrompt string
	tokenLimit   int
}

func NewDirect(client llm.LLMClient, systemPrompt string, tokenLimit int) *Direct {
	return &Direct{client: client, systemPrompt: systemPrompt, tokenLimit: tokenLimit}
}

func (t *Direct) Send(ctx context.Context, history []chat.Message) (*chat.Message, error) {
	prompt := llm.BuildPrompt(t.systemPrompt, llm.FromChat(history), t.tokenLimit)
	res, err := t.client.Send(ctx, prompt)
	if err != nil {
		return nil, &chat.TransportFailure{Err: err}
	}
	if res.Content == "" {
		return nil, nil
	}
	reply := chat.NewModelMessage(res.Content)
	return &reply, nil
}
