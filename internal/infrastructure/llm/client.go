package llm

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cp-portal/internal/config"
	"github.com/cp-portal/internal/domain"
	openai "github.com/sashabaranov/go-openai"
)

// Client streams chat completions from an OpenAI-compatible endpoint.
type Client struct {
	api   *openai.Client
	model string
}

func NewClient(cfg *config.Config) *Client {
	oc := openai.DefaultConfig(cfg.LLMAPIKey)
	oc.BaseURL = cfg.LLMBaseURL
	return &Client{api: openai.NewClientWithConfig(oc), model: cfg.LLMModel}
}

// Stream opens a completion stream. Errors returned here happen before any
// output; errors from the returned stream happen mid-reply.
func (c *Client) Stream(ctx context.Context, messages []domain.ChatMessage) (domain.ChatStream, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Stream:   true,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	s, err := c.api.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("open completion stream: %w", domain.ErrUpstream)
	}
	return &Stream{s: s}, nil
}

// Stream yields reply text chunk by chunk.
type Stream struct {
	s *openai.ChatCompletionStream
}

// Recv returns the next non-empty chunk, or io.EOF when the reply is complete.
func (s *Stream) Recv() (string, error) {
	for {
		resp, err := s.s.Recv()
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		if err != nil {
			return "", fmt.Errorf("completion stream: %w", domain.ErrUpstream)
		}
		var chunk string
		for _, ch := range resp.Choices {
			chunk += ch.Delta.Content
		}
		if chunk != "" {
			return chunk, nil
		}
	}
}

func (s *Stream) Close() error {
	return s.s.Close()
}
