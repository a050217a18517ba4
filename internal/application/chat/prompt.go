package chat

import (
	"fmt"
	"strings"

	"github.com/cp-portal/internal/domain"
)

var roleDescriptions = map[string]string{
	domain.AgentStudent: "You are an AI agent for students in an educational ecosystem.\n" +
		"Your job is to help find study materials, explain topics, remind about deadlines and support students through their practice.",
	domain.AgentOrganizer: "You are an AI agent for organizers of educational events.\n" +
		"Your job is to help create events, manage tasks, draft notifications and interact with participants.",
}

const instructionsChat = `Answer in Markdown:
- Be brief, clear and friendly.
- Use lists, bold text or quotes where useful.
- Refer to relevant materials from the context.
- Do not wrap the answer in a markdown code fence, output plain Markdown only.`

const instructionsAction = `Answer ONLY with valid JSON, without explanations, comments or markdown wrappers.
The structure depends on the request but must always be valid.
Example actions: creating an event, a reminder, submitting a form, asking for confirmation.
All dates use ISO 8601 (for example "2025-12-10T18:00:00Z").`

// SystemPrompt builds the system message for an agent role and reply mode.
// Unknown roles fall back to student, unknown modes to chat.
func SystemPrompt(agentRole, mode, ragContext string) string {
	roleDesc, ok := roleDescriptions[agentRole]
	if !ok {
		roleDesc = roleDescriptions[domain.AgentStudent]
	}
	instructions := instructionsChat
	if mode == domain.ModeAction {
		instructions = instructionsAction
	}

	contextBlock := "**Context not found.** Answer from general knowledge, but do not invent details."
	if c := strings.TrimSpace(ragContext); c != "" {
		contextBlock = "**Relevant context from the knowledge base:**\n" + c
	}

	return fmt.Sprintf(`You are an intelligent assistant in an educational ecosystem.

%s

%s

**Generation rules:**
%s

**Forbidden:**
- Giving information that is neither in the context nor in general knowledge.
- Adding prefixes such as "Answer:" or "JSON:".
- Using backticks or markdown blocks when producing JSON.
`, roleDesc, contextBlock, instructions)
}
