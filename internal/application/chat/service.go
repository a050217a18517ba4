package chat

import (
	"context"
	"fmt"

	"github.com/cp-portal/internal/domain"
)

// Model streams completions from a hosted language model.
type Model interface {
	Stream(ctx context.Context, messages []domain.ChatMessage) (domain.ChatStream, error)
}

// KnowledgeRetriever finds context for a user query.
type KnowledgeRetriever interface {
	Retrieve(ctx context.Context, query string) string
	Replace(ctx context.Context, entries []domain.KnowledgeEntry) error
}

type Service interface {
	Reply(ctx context.Context, req domain.ChatRequest) (domain.ChatStream, error)
	ReplaceKnowledge(ctx context.Context, entries []domain.KnowledgeEntry) error
}

type service struct {
	model     Model
	retriever KnowledgeRetriever
}

func NewService(model Model, retriever KnowledgeRetriever) Service {
	return &service{model: model, retriever: retriever}
}

// Reply prepends a system prompt built from the last user message's context
// and opens the model stream.
func (s *service) Reply(ctx context.Context, req domain.ChatRequest) (domain.ChatStream, error) {
	conversation := make([]domain.ChatMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		if m.Role == domain.ChatRoleSystem {
			continue
		}
		conversation = append(conversation, m)
	}
	if len(conversation) == 0 {
		return nil, fmt.Errorf("messages are required: %w", domain.ErrBadRequest)
	}
	ragContext := s.retriever.Retrieve(ctx, lastUserMessage(conversation))

	msgs := make([]domain.ChatMessage, 0, len(conversation)+1)
	msgs = append(msgs, domain.ChatMessage{
		Role:    domain.ChatRoleSystem,
		Content: SystemPrompt(req.AgentRole, req.Mode, ragContext),
	})
	msgs = append(msgs, conversation...)
	return s.model.Stream(ctx, msgs)
}

func (s *service) ReplaceKnowledge(ctx context.Context, entries []domain.KnowledgeEntry) error {
	return s.retriever.Replace(ctx, entries)
}

func lastUserMessage(msgs []domain.ChatMessage) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == domain.ChatRoleUser {
			return msgs[i].Content
		}
	}
	return ""
}
