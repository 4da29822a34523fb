// Package tool contains the callable capabilities the completion engine may
// invoke during a turn. Every tool follows the same contract: a name, a JSON
// schema for its arguments, and an Execute method returning plain text.
//
// Tools never fail the turn. User-input problems come back as strings
// prefixed with "Error:"; the engine feeds those to the model like any other
// tool output and the stream translator filters them from the visible
// transcript.
package tool

import (
	"context"

	"forge-ai/backend/internal/llm"
)

// Tool is a single callable capability.
type Tool interface {
	Name() string
	Description() string
	Parameters() llm.Parameters
	Execute(ctx context.Context, args map[string]any) string
}

// Definition adapts a Tool to the engine's ToolDefinition.
func Definition(t Tool) llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters:  t.Parameters(),
		Execute:     t.Execute,
	}
}

// Definitions adapts a set of tools for one generation request.
func Definitions(tools []Tool) []llm.ToolDefinition {
	defs := make([]llm.ToolDefinition, 0, len(tools))
	for _, t := range tools {
		defs = append(defs, Definition(t))
	}
	return defs
}

// stringArg extracts a string argument, tolerating absent or mistyped values.
func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}
