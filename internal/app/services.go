package app

import (
	"context"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/klemjul/marachat/internal/chat"
	"github.com/klemjul/marachat/internal/format"
	"github.com/klemjul/marachat/internal/llm"
	"github.com/klemjul/marachat/internal/server"
	"github.com/klemjul/marachat/internal/transport"
	"github.com/klemjul/marachat/internal/ui"
)

type TUIService interface {
	InitialModel(opts ui.InitialModelOptions) ui.ChatTUIModel
	Run(model ui.ChatTUIModel) (returnModel tea.Model, returnErr error)
}

type LLMService interface {
	NewClient(provider llm.LLMProvider, opts llm.LLMClientOptions) (llm.LLMClient, error)
}

type TransportService interface {
	NewHTTP(endpoint string) chat.Transport
	NewDirect(client llm.LLMClient, systemPrompt string, tokenLimit int) chat.Transport
}

type TextFormatService interface {
	FormatMarkdown(text string) (string, error)
}

type ServerService interface {
	Run(ctx context.Context, addr string, handler http.Handler) error
}

type App interface {
	TUI() TUIService
	LLM() LLMService
	Transport() TransportService
	Format() TextFormatService
	Server() ServerService
}

type DefaultTUIService struct{}
type DefaultLLMService struct{}
type DefaultTransportService struct{}
type DefaultTextFormatService struct{}
type DefaultServerService struct{}

type DefaultApp struct {
	tui       TUIService
	llm       LLMService
	transport TransportService
	format    TextFormatService
	server    ServerService
}

func (a *DefaultApp) TUI() TUIService             { return a.tui }
func (a *DefaultApp) LLM() LLMService             { return a.llm }
func (a *DefaultApp) Transport() TransportService { return a.transport }
func (a *DefaultApp) Format() TextFormatService   { return a.format }
func (a *DefaultApp) Server() ServerService       { return a.server }

func (c *DefaultTUIService) InitialModel(opts ui.InitialModelOptions) ui.ChatTUIModel {
	return ui.InitialModel(opts)
}

func (c *DefaultTUIService) Run(model ui.ChatTUIModel) (returnModel tea.Model, returnErr error) {
	return ui.Run(model, tea.WithAltScreen())
}

func (l *DefaultLLMService) NewClient(provider llm.LLMProvider, opts llm.LLMClientOptions) (llm.LLMClient, error) {
	return llm.NewClient(provider, opts)
}

func (t *DefaultTransportService) NewHTTP(endpoint string) chat.Transport {
	return transport.NewHTTP(endpoint, nil)
}

func (t *DefaultTransportService) NewDirect(client llm.LLMClient, systemPrompt string, tokenLimit int) chat.Transport {
	return transport.NewDirect(client, systemPrompt, tokenLimit)
}

func (l *DefaultTextFormatService) FormatMarkdown(text string) (string, error) {
	return format.FormatMarkdown(text)
}

func (s *DefaultServerService) Run(ctx context.Context, addr string, handler http.Handler) error {
	return server.Run(ctx, addr, handler)
}

func NewDefaultApp() App {
	return &DefaultApp{
		tui:       &DefaultTUIService{},
		llm:       &DefaultLLMService{},
		transport: &DefaultTransportService{},
		format:    &DefaultTextFormatService{},
		server:    &DefaultServerService{},
	}
}
