package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cp-portal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type fakeStream struct {
	chunks []string
	err    error
	closed bool
}

func (s *fakeStream) Recv() (string, error) {
	if len(s.chunks) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	c := s.chunks[0]
	s.chunks = s.chunks[1:]
	return c, nil
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

type mockChatSvc struct{ mock.Mock }

func (m *mockChatSvc) Reply(ctx context.Context, req domain.ChatRequest) (domain.ChatStream, error) {
	args := m.Called(ctx, req)
	if s := args.Get(0); s != nil {
		return s.(domain.ChatStream), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChatSvc) ReplaceKnowledge(ctx context.Context, entries []domain.KnowledgeEntry) error {
	return m.Called(ctx, entries).Error(0)
}

const chatBody = `{"messages":[{"role":"user","content":"when is the deadline?"}]}`

func TestChat_StreamsChunks(t *testing.T) {
	stream := &fakeStream{chunks: []string{"The ", "deadline ", "is Friday."}}
	svc := &mockChatSvc{}
	svc.On("Reply", mock.Anything, mock.Anything).Return(stream, nil)

	rr := httptest.NewRecorder()
	NewChatHandler(svc).Chat(rr, postJSON("/v1/chat", chatBody))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "The deadline is Friday.", rr.Body.String())
	assert.True(t, stream.closed)
}

func TestChat_UpstreamFailureBeforeFirstChunk(t *testing.T) {
	stream := &fakeStream{err: domain.ErrUpstream}
	svc := &mockChatSvc{}
	svc.On("Reply", mock.Anything, mock.Anything).Return(stream, nil)

	rr := httptest.NewRecorder()
	NewChatHandler(svc).Chat(rr, postJSON("/v1/chat", chatBody))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestChat_UpstreamFailureMidStreamKeepsPartialReply(t *testing.T) {
	stream := &fakeStream{chunks: []string{"partial"}, err: domain.ErrUpstream}
	svc := &mockChatSvc{}
	svc.On("Reply", mock.Anything, mock.Anything).Return(stream, nil)

	rr := httptest.NewRecorder()
	NewChatHandler(svc).Chat(rr, postJSON("/v1/chat", chatBody))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "partial", rr.Body.String())
}

func TestChat_EmptyMessagesIs400(t *testing.T) {
	svc := &mockChatSvc{}
	rr := httptest.NewRecorder()
	NewChatHandler(svc).Chat(rr, postJSON("/v1/chat", `{"messages":[]}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "Reply", mock.Anything, mock.Anything)
}

func TestReplaceKnowledge(t *testing.T) {
	entries := []domain.KnowledgeEntry{{Keywords: []string{"rules"}, Text: "Be nice."}}
	svc := &mockChatSvc{}
	svc.On("ReplaceKnowledge", mock.Anything, entries).Return(nil)

	rr := httptest.NewRecorder()
	NewChatHandler(svc).ReplaceKnowledge(rr, postJSON("/v1/chat/knowledge", `{"entries":[{"keywords":["rules"],"text":"Be nice."}]}`))

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}
