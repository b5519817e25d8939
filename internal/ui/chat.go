package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/klemjul/marachat/internal/chat"
	"github.com/klemjul/marachat/internal/format"
)

// Conversation is the part of chat.Controller the TUI drives.
type Conversation interface {
	Messages() []chat.Message
	Awaiting() bool
	Submit(ctx context.Context, msg chat.Message) (*chat.Message, error)
	Reset()
}

// ConversationChangedMsg asks the model to re-render the conversation.
type ConversationChangedMsg struct{}

// SubmitResultMsg carries the outcome of a submission.
type SubmitResultMsg struct {
	Seq   int
	Reply *chat.Message
	Err   error
}

type ChatTUIModel struct {
	textInput    textinput.Model
	viewport     viewport.Model
	spinner      spinner.Model
	conversation Conversation
	ctx          context.Context
	title        string
	pending      bool
	submitSeq    int
	lastErr      error
}

const (
	CHAT_INPUT_PLACEHOLDER = "Type a message... (ctrl+r to start over)"
	CHAT_WAITING_RESPONSE  = "Mara is typing..."
	CHAT_ERROR_PREFIX      = "⚠ Failed to get a reply:"
)

var (
	userStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	botStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true)
	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true)
)

type InitialModelOptions struct {
	Title        string
	Conversation Conversation
	Context      context.Context
}

func InitialModel(opts InitialModelOptions) ChatTUIModel {
	ti := textinput.New()
	ti.Placeholder = CHAT_INPUT_PLACEHOLDER
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := ChatTUIModel{
		textInput:    ti,
		viewport:     viewport.New(0, 0),
		spinner:      sp,
		conversation: opts.Conversation,
		ctx:          ctx,
		title:        opts.Title,
	}
	m.updateViewport()
	return m
}

func (m ChatTUIModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		tea.EnableMouseCellMotion,
	)
}

func (m ChatTUIModel) waiting() bool {
	return m.pending || m.conversation.Awaiting()
}

func (m ChatTUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		titleLines := 1
		if msg.Width > 0 {
			titleLines = (len(m.title) / msg.Width) + 1
		}
		m.viewport = viewport.New(max(msg.Width, 0), max(msg.Height-(3+titleLines), 0))
		m.updateViewport()

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.viewport.ScrollUp(1)
			case tea.MouseButtonWheelDown:
				m.viewport.ScrollDown(1)
			}
		}

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)

	case ConversationChangedMsg:
		m.updateViewport()

	case SubmitResultMsg:
		if msg.Seq == m.submitSeq {
			m.pending = false
			if msg.Err != nil && !errors.Is(msg.Err, chat.ErrConversationReset) {
				m.lastErr = msg.Err
			}
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			cmd = tea.Quit
		case tea.KeyCtrlR:
			m.conversation.Reset()
			m.pending = false
			m.submitSeq++
			m.lastErr = nil
			m.textInput.SetValue("")
			m.updateViewport()
		case tea.KeyEnter:
			text := strings.TrimSpace(m.textInput.Value())
			if text != "" && !m.waiting() {
				m.pending = true
				m.submitSeq++
				m.lastErr = nil
				m.textInput.SetValue("")
				m.updateViewport()

				cmd = m.submit(m.submitSeq, chat.NewUserMessage(text))
			}
		}
	}

	m.textInput, _ = m.textInput.Update(msg)

	if m.waiting() {
		m.textInput.Blur()
	} else {
		m.textInput.Focus()
	}

	return m, cmd
}

func (m ChatTUIModel) submit(seq int, msg chat.Message) tea.Cmd {
	conversation, ctx := m.conversation, m.ctx
	return func() tea.Msg {
		reply, err := conversation.Submit(ctx, msg)
		return SubmitResultMsg{Seq: seq, Reply: reply, Err: err}
	}
}

func (m *ChatTUIModel) updateViewport() {
	messages := m.conversation.Messages()
	displayedMessages := make([]string, 0, len(messages)+1)
	for _, msg := range messages {
		switch msg.Role {
		case chat.Model:
			out, err := format.FormatMarkdown(msg.Text())
			if err != nil {
				out = msg.Text()
			}
			displayedMessages = append(displayedMessages, botStyle.Render(strings.TrimSpace(out)))
		case chat.User:
			displayedMessages = append(displayedMessages, userStyle.Render(fmt.Sprintf("> %s", msg.Text())))
		}
	}
	if m.lastErr != nil {
		displayedMessages = append(displayedMessages, errorStyle.Render(fmt.Sprintf("%s %v", CHAT_ERROR_PREFIX, m.lastErr)))
	}

	m.viewport.SetContent(strings.Join(displayedMessages, "\n\n"))
	m.viewport.GotoBottom()
}

func (m ChatTUIModel) View() string {
	input := m.textInput.View()

	if m.waiting() {
		input = fmt.Sprintf("%s %s", m.spinner.View(), CHAT_WAITING_RESPONSE)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Width(m.viewport.Width).Render(m.title),
		m.viewport.View(),
		inputStyle.Width(m.viewport.Width).Render(input),
	)
}

type changeNotifier interface {
	OnChange(fn func())
}

// Run starts the program and re-renders whenever the conversation changes
// outside of Update, e.g. while a submission is in flight.
func Run(m ChatTUIModel, opts ...tea.ProgramOption) (tea.Model, error) {
	p := tea.NewProgram(m, opts...)
	if n, ok := m.conversation.(changeNotifier); ok {
		n.OnChange(func() { go p.Send(ConversationChangedMsg{}) })
		defer n.OnChange(nil)
	}
	return p.Run()
}
