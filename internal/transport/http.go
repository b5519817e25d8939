package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/klemjul/marachat/internal/chat"
)

const DEFAULT_ENDPOINT = "http://localhost:8080/api/chat"

// ChatRequest is the body posted to the completion endpoint.
type ChatRequest struct {
	Messages []chat.Message `json:"messages" validate:"required,min=1,dive"`
}

// HTTP posts the history to a completion endpoint and decodes a single
// Message from the response.
type HTTP struct {
	client   *http.Client
	endpoint string
}

func NewHTTP(endpoint string, client *http.Client) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{client: client, endpoint: endpoint}
}

func (t *HTTP) Send(ctx context.Context, history []chat.Message) (*chat.Message, error) {
	body, err := json.Marshal(ChatRequest{Messages: history})
	if err != nil {
		return nil, &chat.TransportFailure{Err: fmt.Errorf("could not marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &chat.TransportFailure{Err: fmt.Errorf("could not create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &chat.TransportFailure{Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &chat.TransportFailure{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
		}
	}

	var reply *chat.Message
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, &chat.TransportFailure{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("could not decode response: %w", err),
		}
	}
	if reply == nil || reply.IsEmpty() {
		return nil, nil
	}
	if reply.Role != chat.Model {
		return nil, &chat.TransportFailure{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected reply role %q", reply.Role),
		}
	}
	return reply, nil
}

// statusText returns the reason phrase sent by the server, falling back to
// the standard text for the code.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
