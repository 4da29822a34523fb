package tool

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"forge-ai/backend/internal/knowledge"
	"forge-ai/backend/internal/llm"
)

// KnowledgeToolName is the name the knowledge search tool is advertised under.
const KnowledgeToolName = "search_knowledge"

// KnowledgeMarker matches the [knowledge:N results] prefix of a successful
// search result. Like the artifact marker, the exact bracket syntax is part
// of the internal protocol between tools and the stream translator.
var KnowledgeMarker = regexp.MustCompile(`^\[knowledge:(\d+) results\]`)

// KnowledgeSearchTool queries the external knowledge backend and formats the
// hits into context the model can ground its answer on.
type KnowledgeSearchTool struct {
	searcher knowledge.Searcher
}

func NewKnowledgeSearchTool(searcher knowledge.Searcher) *KnowledgeSearchTool {
	return &KnowledgeSearchTool{searcher: searcher}
}

func (t *KnowledgeSearchTool) Name() string { return KnowledgeToolName }

func (t *KnowledgeSearchTool) Description() string {
	return "Search the user's knowledge base for stored notes, documentation and reference material relevant to the question."
}

func (t *KnowledgeSearchTool) Parameters() llm.Parameters {
	return llm.Parameters{
		Type: "object",
		Properties: map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "What to search for",
			},
			"tags": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Optional tags to filter by",
			},
			"collection": map[string]any{
				"type":        "string",
				"description": "Optional collection to search within",
			},
			"search_type": map[string]any{
				"type":        "string",
				"description": "Search mode",
				"enum":        []string{"semantic", "keyword", "hybrid"},
			},
		},
		Required: []string{"query"},
	}
}

func (t *KnowledgeSearchTool) Execute(ctx context.Context, args map[string]any) string {
	query := stringArg(args, "query")
	if len(query) < 2 {
		return "Error: Search query is too short. Please provide a more specific query."
	}
	if !t.searcher.Available(ctx) {
		return "Error: The knowledge base is not available."
	}

	searchReq := &knowledge.SearchRequest{
		Query:      query,
		Collection: stringArg(args, "collection"),
		Mode:       stringArg(args, "search_type"),
	}
	if raw, ok := args["tags"].([]any); ok {
		for _, v := range raw {
			if tag, ok := v.(string); ok {
				searchReq.Tags = append(searchReq.Tags, tag)
			}
		}
	}

	results, err := t.searcher.Search(ctx, searchReq)
	if err != nil {
		return fmt.Sprintf("Knowledge search failed: %v", err)
	}

	return fmt.Sprintf("[knowledge:%d results]\n\n%s", len(results), formatResults(results))
}

func formatResults(results []knowledge.Result) string {
	if len(results) == 0 {
		return "No matching entries were found in the knowledge base."
	}
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "### %s\n%s", r.Title, strings.TrimSpace(r.Content))
		if len(r.Tags) > 0 {
			fmt.Fprintf(&b, "\n_Tags: %s_", strings.Join(r.Tags, ", "))
		}
	}
	return b.String()
}
