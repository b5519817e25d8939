package chat

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

const DEFAULT_GREETING = "안녕? 나는 마라야. 너의 AI 친구😉 오늘은 무슨 일이 있었니?"

// Transport submits the conversation history, seed greeting excluded, and
// returns the assistant reply. A nil reply with a nil error is an empty result.
type Transport interface {
	Send(ctx context.Context, history []Message) (*Message, error)
}

type State int

const (
	Idle State = iota
	AwaitingReply
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingReply:
		return "awaiting_reply"
	default:
		return "unknown"
	}
}

// Controller owns the conversation of a single session. Reset and Submit are
// the only operations that mutate it.
type Controller struct {
	mu         sync.Mutex
	id         string
	transport  Transport
	greeting   Message
	messages   []Message
	awaiting   bool
	generation uint64
	onChange   func()
	logger     *slog.Logger
}

type Option func(*Controller)

func WithGreeting(text string) Option {
	return func(c *Controller) {
		if text != "" {
			c.greeting = NewModelMessage(text)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewController(transport Transport, opts ...Option) *Controller {
	c := &Controller{
		id:        uuid.NewString(),
		transport: transport,
		greeting:  NewModelMessage(DEFAULT_GREETING),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("session_id", c.id)
	c.Reset()
	return c
}

func (c *Controller) ID() string {
	return c.id
}

// OnChange registers fn to be called after every mutation of the conversation
// or of the awaiting flag. fn is called without the controller lock held.
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Reset replaces the conversation with the greeting alone. Replies to requests
// issued before the reset are discarded when they arrive.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.messages = []Message{c.greeting.clone()}
	c.awaiting = false
	c.generation++
	generation := c.generation
	c.mu.Unlock()

	c.logger.Debug("Conversation reset", "generation", generation)
	c.notify()
}

// Submit appends msg, sends the history to the transport and appends the
// reply. On failure the user message stays in the conversation and a
// *TransportFailure is returned. An empty reply returns (nil, nil) and leaves
// the conversation untouched.
func (c *Controller) Submit(ctx context.Context, msg Message) (*Message, error) {
	c.mu.Lock()
	if c.awaiting {
		c.mu.Unlock()
		return nil, ErrAwaitingReply
	}
	c.messages = append(c.messages, msg.clone())
	c.awaiting = true
	generation := c.generation
	history := cloneMessages(c.messages[1:])
	c.mu.Unlock()
	c.notify()

	c.logger.Debug("Sending conversation", "generation", generation, "history_len", len(history))
	reply, err := c.transport.Send(ctx, history)

	c.mu.Lock()
	if c.generation != generation {
		c.mu.Unlock()
		c.logger.Info("Discarding reply for a reset conversation", "generation", generation)
		return nil, ErrConversationReset
	}
	c.awaiting = false

	if err != nil {
		c.mu.Unlock()
		c.notify()
		failure := asTransportFailure(err)
		c.logger.Warn("Transport failed", "status_code", failure.StatusCode, "error", failure)
		return nil, failure
	}

	if reply == nil || reply.IsEmpty() {
		c.mu.Unlock()
		c.notify()
		c.logger.Debug("Transport returned an empty result")
		return nil, nil
	}

	stored := reply.clone()
	c.messages = append(c.messages, stored)
	c.mu.Unlock()
	c.notify()

	out := stored.clone()
	return &out, nil
}

// Messages returns a copy of the conversation, oldest first.
func (c *Controller) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneMessages(c.messages)
}

// History returns the conversation as it is sent to the transport: without the
// seed greeting.
func (c *Controller) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneMessages(c.messages[1:])
}

func (c *Controller) Awaiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.awaiting
}

func (c *Controller) State() State {
	if c.Awaiting() {
		return AwaitingReply
	}
	return Idle
}

func (c *Controller) notify() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}
