package app

import (
	"testing"

	"github.com/klemjul/marachat/internal/llm"
	"github.com/klemjul/marachat/internal/transport"
	"github.com/stretchr/testify/assert"
)

func TestNewDefaultApp(t *testing.T) {
	a := NewDefaultApp()

	assert.IsType(t, &DefaultTUIService{}, a.TUI())
	assert.IsType(t, &DefaultLLMService{}, a.LLM())
	assert.IsType(t, &DefaultTransportService{}, a.Transport())
	assert.IsType(t, &DefaultTextFormatService{}, a.Format())
	assert.IsType(t, &DefaultServerService{}, a.Server())
}

func TestDefaultTransportService(t *testing.T) {
	s := &DefaultTransportService{}

	assert.IsType(t, &transport.HTTP{}, s.NewHTTP("http://localhost:8080/api/chat"))
	assert.IsType(t, &transport.Direct{}, s.NewDirect(nil, "", 0))
}

func TestDefaultLLMService_InvalidProvider(t *testing.T) {
	client, err := (&DefaultLLMService{}).NewClient("unknown", llm.LLMClientOptions{Model: "x"})
	assert.Nil(t, client)
	assert.EqualError(t, err, "unknown: invalid provider")
}
