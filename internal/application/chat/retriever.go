package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cp-portal/internal/domain"
)

// ObjectStore reads and writes the knowledge base document.
type ObjectStore interface {
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

// builtinKnowledge is served when the stored knowledge base is missing or unreadable.
var builtinKnowledge = []domain.KnowledgeEntry{
	{
		Keywords: []string{"дедлайн", "deadline"},
		Text:     `The deadline for the "AI agent" task is December 14, 2025.`,
	},
	{
		Keywords: []string{"rag"},
		Text:     "RAG (Retrieval-Augmented Generation) is a method that adds relevant context from a knowledge base to the request.",
	},
}

const knowledgeTTL = 5 * time.Minute

// Retriever matches queries against knowledge base entries by keyword.
type Retriever struct {
	store ObjectStore
	key   string
	now   func() time.Time

	mu       sync.Mutex
	entries  []domain.KnowledgeEntry
	loadedAt time.Time
}

func NewRetriever(store ObjectStore, key string) *Retriever {
	return &Retriever{store: store, key: key, now: time.Now}
}

// Retrieve returns the text of every entry with a keyword contained in query,
// joined by blank lines, or "" when nothing matches.
func (r *Retriever) Retrieve(ctx context.Context, query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return ""
	}
	var hits []string
	for _, e := range r.knowledge(ctx) {
		for _, kw := range e.Keywords {
			if kw != "" && strings.Contains(q, strings.ToLower(kw)) {
				hits = append(hits, e.Text)
				break
			}
		}
	}
	return strings.Join(hits, "\n\n")
}

// Replace validates and stores a new knowledge base, then drops the cached copy.
func (r *Retriever) Replace(ctx context.Context, entries []domain.KnowledgeEntry) error {
	for i, e := range entries {
		if strings.TrimSpace(e.Text) == "" || len(e.Keywords) == 0 {
			return fmt.Errorf("entry %d needs text and keywords: %w", i, domain.ErrBadRequest)
		}
	}
	body, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal knowledge base: %w", err)
	}
	if _, err := r.store.Upload(ctx, r.key, bytes.NewReader(body), "application/json"); err != nil {
		return err
	}
	r.mu.Lock()
	r.entries = entries
	r.loadedAt = r.now()
	r.mu.Unlock()
	return nil
}

func (r *Retriever) knowledge(ctx context.Context) []domain.KnowledgeEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries != nil && r.now().Sub(r.loadedAt) < knowledgeTTL {
		return r.entries
	}
	entries, err := r.load(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		slog.Info("no knowledge base uploaded, using built-in entries", "key", r.key)
		entries = builtinKnowledge
	case err != nil:
		slog.Warn("knowledge base unavailable, using built-in entries", "key", r.key, "err", err)
		entries = builtinKnowledge
	}
	r.entries = entries
	r.loadedAt = r.now()
	return entries
}

func (r *Retriever) load(ctx context.Context) ([]domain.KnowledgeEntry, error) {
	if r.store == nil {
		return nil, fmt.Errorf("no knowledge store configured")
	}
	rc, err := r.store.Download(ctx, r.key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var entries []domain.KnowledgeEntry
	if err := json.NewDecoder(rc).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode knowledge base: %w", err)
	}
	if entries == nil {
		entries = []domain.KnowledgeEntry{}
	}
	return entries, nil
}
