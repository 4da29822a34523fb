package llm

import "context"

// EventType discriminates the events an Engine emits while streaming.
type EventType string

const (
	// EventTextDelta carries a small fragment of assistant text.
	EventTextDelta EventType = "text_delta"
	// EventToolCall signals that the engine is about to run a tool.
	EventToolCall EventType = "tool_call"
	// EventToolResult carries the string a tool returned.
	EventToolResult EventType = "tool_result"
	// EventDone signals the end of the generation.
	EventDone EventType = "done"
)

// Event is one element of an engine's streamed output.
type Event struct {
	Type     EventType
	Delta    string // EventTextDelta
	ToolName string // EventToolCall, EventToolResult
	ToolArgs string // EventToolCall, raw JSON arguments
	Result   string // EventToolResult
}

// Message is a single role-tagged entry of the conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Parameters is the JSON Schema describing a tool's arguments.
type Parameters struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Required   []string       `json:"required,omitempty"`
}

// ToolDefinition describes a callable tool: its schema, advertised to the
// model, and the function the engine invokes when the model calls it.
// Execute returns plain text; tools report user-input problems by returning
// a string prefixed with "Error:" instead of failing the generation.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  Parameters
	Execute     func(ctx context.Context, args map[string]any) string
}

// GenerateRequest describes one generation: system prompt, history, and the
// optional tool set. MaxSteps bounds how many rounds of tool calls the engine
// may run before it must answer in plain text.
type GenerateRequest struct {
	Model    string
	System   string
	Messages []Message
	Tools    []ToolDefinition
	MaxSteps int
}

// GenerateResponse is the result of a non-streaming generation.
type GenerateResponse struct {
	Response string
}

// Engine is the interface to a streaming completion provider.
type Engine interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
	GenerateStream(ctx context.Context, req *GenerateRequest, ch chan<- Event) error
}
