package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/klemjul/marachat/internal/chat"
	"github.com/klemjul/marachat/internal/llm"
	"github.com/klemjul/marachat/internal/transport"
)

const MAX_REQUEST_BYTES = 1 << 20

type ChatHandlerOptions struct {
	SystemPrompt      string
	HistoryTokenLimit int
}

// ChatHandler answers a conversation with the next model turn.
type ChatHandler struct {
	client llm.LLMClient
	opts   ChatHandlerOptions
}

func NewChatHandler(client llm.LLMClient, opts ChatHandlerOptions) *ChatHandler {
	return &ChatHandler{client: client, opts: opts}
}

func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req transport.ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MAX_REQUEST_BYTES)).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondWithError(w, r, fmt.Errorf("%w: request body exceeds %d bytes", ErrValidation, maxErr.Limit))
			return
		}
		respondWithError(w, r, fmt.Errorf("%w: invalid request payload", ErrValidation))
		return
	}
	if err := validateStruct(req); err != nil {
		respondWithError(w, r, err)
		return
	}
	if req.Messages[0].Role != chat.User {
		respondWithError(w, r, fmt.Errorf("%w: first message must have role %q", ErrValidation, chat.User))
		return
	}
	if req.Messages[len(req.Messages)-1].Role != chat.User {
		respondWithError(w, r, fmt.Errorf("%w: last message must have role %q", ErrValidation, chat.User))
		return
	}

	prompt := llm.BuildPrompt(h.opts.SystemPrompt, llm.FromChat(req.Messages), h.opts.HistoryTokenLimit)
	res, err := h.client.Send(r.Context(), prompt)
	if err != nil {
		respondWithError(w, r, fmt.Errorf("%w: %v", ErrUpstream, err))
		return
	}

	slog.InfoContext(r.Context(), "Generated reply",
		"request_id", middleware.GetReqID(r.Context()),
		"history_len", len(req.Messages),
		"prompt_len", len(prompt),
		"input_tokens", res.Usage.InputTokens,
		"output_tokens", res.Usage.OutputTokens,
	)

	// an empty completion is answered with null, which clients treat as no reply
	if res.Content == "" {
		respondWithJSON(w, http.StatusOK, nil)
		return
	}
	respondWithJSON(w, http.StatusOK, chat.NewModelMessage(res.Content))
}
