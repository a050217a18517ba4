package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cp-portal/internal/application/chat"
	"github.com/cp-portal/internal/domain"
)

// ChatHandler relays assistant replies as a plain-text stream.
type ChatHandler struct {
	svc chat.Service
}

func NewChatHandler(svc chat.Service) *ChatHandler { return &ChatHandler{svc: svc} }

type knowledgeRequest struct {
	Entries []domain.KnowledgeEntry `json:"entries" validate:"required,min=1"`
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if !decodeValid(w, r, &req) {
		return
	}
	stream, err := h.svc.Reply(r.Context(), req)
	if err != nil {
		httpError(w, r, err)
		return
	}
	defer stream.Close()

	// The status line is only committed once the first chunk arrives, so an
	// upstream failure before any output is still reported as an error.
	chunk, err := stream.Recv()
	if err != nil && !errors.Is(err, io.EOF) {
		httpError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	rc := http.NewResponseController(w)

	for err == nil {
		if _, werr := io.WriteString(w, chunk); werr != nil {
			return
		}
		_ = rc.Flush()
		chunk, err = stream.Recv()
	}
	if !errors.Is(err, io.EOF) {
		slog.Warn("chat stream interrupted", "err", err)
	}
}

func (h *ChatHandler) ReplaceKnowledge(w http.ResponseWriter, r *http.Request) {
	var req knowledgeRequest
	if !decodeValid(w, r, &req) {
		return
	}
	if err := h.svc.ReplaceKnowledge(r.Context(), req.Entries); err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "knowledge base updated"})
}
