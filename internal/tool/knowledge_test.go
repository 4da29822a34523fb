package tool_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"forge-ai/backend/internal/knowledge"
	mock_knowledge "forge-ai/backend/internal/knowledge/mocks"
	"forge-ai/backend/internal/tool"
)

func TestKnowledgeSearchTool_QueryTooShort(t *testing.T) {
	searcher := mock_knowledge.NewMockSearcher(t)
	knowledgeTool := tool.NewKnowledgeSearchTool(searcher)

	result := knowledgeTool.Execute(context.Background(), map[string]any{"query": "x"})
	assert.Equal(t, "Error: Search query is too short. Please provide a more specific query.", result)
}

func TestKnowledgeSearchTool_BackendUnavailable(t *testing.T) {
	ctx := context.Background()
	searcher := mock_knowledge.NewMockSearcher(t)
	searcher.On("Available", ctx).Return(false).Once()

	knowledgeTool := tool.NewKnowledgeSearchTool(searcher)

	result := knowledgeTool.Execute(ctx, map[string]any{"query": "deployment notes"})
	assert.Equal(t, "Error: The knowledge base is not available.", result)
}

func TestKnowledgeSearchTool_SearchFailure(t *testing.T) {
	ctx := context.Background()
	searcher := mock_knowledge.NewMockSearcher(t)
	searcher.On("Available", ctx).Return(true).Once()
	searcher.On("Search", ctx, mock.AnythingOfType("*knowledge.SearchRequest")).
		Return(nil, assert.AnError).Once()

	knowledgeTool := tool.NewKnowledgeSearchTool(searcher)

	result := knowledgeTool.Execute(ctx, map[string]any{"query": "deployment notes"})
	assert.True(t, strings.HasPrefix(result, "Knowledge search failed:"), "got %q", result)
}

func TestKnowledgeSearchTool_Success(t *testing.T) {
	ctx := context.Background()
	searcher := mock_knowledge.NewMockSearcher(t)
	searcher.On("Available", ctx).Return(true).Once()

	var captured *knowledge.SearchRequest
	searcher.On("Search", ctx, mock.AnythingOfType("*knowledge.SearchRequest")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*knowledge.SearchRequest)
		}).
		Return([]knowledge.Result{
			{Title: "Deploy runbook", Content: "Use the blue/green switch.", Tags: []string{"ops"}},
			{Title: "Rollback", Content: "Revert the release tag."},
		}, nil).Once()

	knowledgeTool := tool.NewKnowledgeSearchTool(searcher)

	result := knowledgeTool.Execute(ctx, map[string]any{
		"query":       "deployment notes",
		"tags":        []any{"ops", "release"},
		"collection":  "runbooks",
		"search_type": "semantic",
	})

	require.NotNil(t, captured)
	assert.Equal(t, "deployment notes", captured.Query)
	assert.Equal(t, []string{"ops", "release"}, captured.Tags)
	assert.Equal(t, "runbooks", captured.Collection)
	assert.Equal(t, "semantic", captured.Mode)

	assert.True(t, strings.HasPrefix(result, "[knowledge:2 results]\n\n"), "got %q", result)
	assert.True(t, tool.KnowledgeMarker.MatchString(result))
	assert.Contains(t, result, "### Deploy runbook")
	assert.Contains(t, result, "Use the blue/green switch.")
	assert.Contains(t, result, "_Tags: ops_")
}

func TestKnowledgeSearchTool_ZeroResults(t *testing.T) {
	ctx := context.Background()
	searcher := mock_knowledge.NewMockSearcher(t)
	searcher.On("Available", ctx).Return(true).Once()
	searcher.On("Search", ctx, mock.Anything).Return([]knowledge.Result{}, nil).Once()

	knowledgeTool := tool.NewKnowledgeSearchTool(searcher)

	result := knowledgeTool.Execute(ctx, map[string]any{"query": "nothing stored"})
	assert.True(t, strings.HasPrefix(result, "[knowledge:0 results]\n\n"), "got %q", result)
}
