package domain

// Agent roles and reply modes accepted by the chat relay.
const (
	AgentStudent   = "student"
	AgentOrganizer = "organizer"

	ModeChat   = "chat"
	ModeAction = "action"
)

const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages  []ChatMessage `json:"messages" validate:"required,min=1,dive"`
	AgentRole string        `json:"agent_role" validate:"omitempty,oneof=student organizer"`
	Mode      string        `json:"mode" validate:"omitempty,oneof=chat action"`
}

// KnowledgeEntry is a retrievable snippet. It matches a query when any keyword
// occurs in it, compared case-insensitively.
type KnowledgeEntry struct {
	Keywords []string `json:"keywords"`
	Text     string   `json:"text"`
}

// ChatStream yields a model reply chunk by chunk. Recv returns io.EOF once the
// reply is complete.
type ChatStream interface {
	Recv() (string, error)
	Close() error
}
