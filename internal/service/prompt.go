package service

import (
	"fmt"
	"strings"

	"forge-ai/backend/internal/tool"
)

// basePrompt is always sent, with or without tools.
const basePrompt = "You are a helpful AI assistant. Answer questions directly and conversationally."

// buildSystemPrompt appends tool-usage instructions to the base prompt when
// the turn has active tools. The instructions enumerate the available tools
// and forbid chained or repeated tool calls, reinforcing the engine-level
// max-step bound.
func buildSystemPrompt(tools []tool.Tool) string {
	if len(tools) == 0 {
		return basePrompt
	}

	var b strings.Builder
	b.WriteString(basePrompt)
	b.WriteString("\n\nYou have access to the following tools:\n")
	for _, t := range tools {
		fmt.Fprintf(&b, "- %s: %s\n", t.Name(), t.Description())
	}
	b.WriteString("\nOnly call tools from this list; never invent tool names.")
	b.WriteString("\nUse search_knowledge when the question concerns the user's own notes, documents or stored material; answer from general knowledge otherwise.")
	b.WriteString("\nAfter you receive a tool result, respond to the user in plain text. Do not call the same tool again and do not chain multiple tool calls in one turn.")
	return b.String()
}
