package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forge-ai/backend/internal/config"
	mock_knowledge "forge-ai/backend/internal/knowledge/mocks"
	"forge-ai/backend/internal/llm"
	mock_llm "forge-ai/backend/internal/llm/mocks"
	"forge-ai/backend/internal/model"
	"forge-ai/backend/internal/repository"
	mock_repo "forge-ai/backend/internal/repository/mocks"
)

func newTranslatorService(t *testing.T) (*ChatService, *mock_repo.MockRepository) {
	repo := mock_repo.NewMockRepository(t)
	engine := mock_llm.NewMockEngine(t)
	searcher := mock_knowledge.NewMockSearcher(t)
	cfg := &config.Config{
		MainModel:     "test-model",
		TitleModel:    "title-model",
		ArtifactModel: "artifact-model",
		ToolModels:    []string{"test-model"},
	}
	return NewChatService(repo, engine, searcher, cfg), repo
}

// runTranslator feeds the given engine events through the translator and
// returns the emitted wire events alongside the accumulated state.
func runTranslator(t *testing.T, s *ChatService, input []llm.Event) ([]model.StreamEvent, *streamState) {
	t.Helper()

	events := make(chan llm.Event, len(input))
	for _, ev := range input {
		events <- ev
	}
	close(events)

	out := make(chan model.StreamEvent, len(input)+4)
	state := &streamState{}
	require.NoError(t, s.translateEvents(context.Background(), events, out, state))
	close(out)

	var emitted []model.StreamEvent
	for ev := range out {
		emitted = append(emitted, ev)
	}
	return emitted, state
}

func TestTranslator_TextDeltasPreserveOrder(t *testing.T) {
	s, _ := newTranslatorService(t)

	emitted, state := runTranslator(t, s, []llm.Event{
		{Type: llm.EventTextDelta, Delta: "Hi"},
		{Type: llm.EventTextDelta, Delta: " there"},
		{Type: llm.EventDone},
	})

	require.Len(t, emitted, 2)
	assert.Equal(t, model.TextEvent("Hi"), emitted[0])
	assert.Equal(t, model.TextEvent(" there"), emitted[1])

	// Accumulated text is exactly the concatenation of the deltas in order.
	assert.Equal(t, "Hi there", state.text.String())
	assert.Empty(t, state.artifactIDs)
}

func TestTranslator_ScaffoldResultBecomesVisibleText(t *testing.T) {
	s, _ := newTranslatorService(t)

	summary := "Generated scaffold for model BlogPost with 2 field(s)."
	emitted, state := runTranslator(t, s, []llm.Event{
		{Type: llm.EventToolResult, ToolName: "generate_laravel_model", Result: summary},
	})

	require.Len(t, emitted, 1)
	assert.Equal(t, model.TextEvent("\n\n"+summary), emitted[0])
	assert.Equal(t, "\n\n"+summary, state.text.String())
}

func TestTranslator_ScaffoldErrorIsAbsorbed(t *testing.T) {
	s, _ := newTranslatorService(t)

	emitted, state := runTranslator(t, s, []llm.Event{
		{Type: llm.EventToolResult, ToolName: "generate_laravel_model", Result: "Error: Model name must be in PascalCase (e.g. BlogPost)."},
	})

	assert.Empty(t, emitted)
	assert.Zero(t, state.text.Len())
}

func TestTranslator_KnowledgeResultAppendsContext(t *testing.T) {
	s, _ := newTranslatorService(t)

	result := "[knowledge:2 results]\n\n### Deploy runbook\nUse the blue/green switch."
	emitted, state := runTranslator(t, s, []llm.Event{
		{Type: llm.EventToolResult, ToolName: "search_knowledge", Result: result},
	})

	expected := "\n\n**Knowledge Base Results:**### Deploy runbook\nUse the blue/green switch."
	require.Len(t, emitted, 1)
	assert.Equal(t, model.TextEvent(expected), emitted[0])
	assert.Equal(t, expected, state.text.String())
}

func TestTranslator_KnowledgeResultWithoutMarkerIsAbsorbed(t *testing.T) {
	s, _ := newTranslatorService(t)

	emitted, state := runTranslator(t, s, []llm.Event{
		{Type: llm.EventToolResult, ToolName: "search_knowledge", Result: "Knowledge search failed: connection refused"},
	})

	assert.Empty(t, emitted)
	assert.Zero(t, state.text.Len())
}

func TestTranslator_ArtifactMarkerEmitsArtifactEvent(t *testing.T) {
	s, repo := newTranslatorService(t)

	artifactID := "0c8bab9d-3c2f-4a0b-9a51-df1c0c9f8a11"
	language := "xml"
	artifact := &model.Artifact{
		ID:         artifactID,
		MessageID:  "msg-1",
		Identifier: "circle",
		Type:       model.ArtifactTypeSVG,
		Title:      "Circle",
		Language:   &language,
		Content:    "<svg/>",
		Version:    1,
	}
	repo.On("GetArtifact", context.Background(), artifactID).Return(artifact, nil).Once()

	emitted, state := runTranslator(t, s, []llm.Event{
		{
			Type:     llm.EventToolResult,
			ToolName: "create_artifact",
			Result:   "Artifact created successfully: [artifact:" + artifactID + "] - Circle",
		},
	})

	assert.Equal(t, []string{artifactID}, state.artifactIDs)
	require.Len(t, emitted, 1)
	assert.Equal(t, model.StreamEventArtifact, emitted[0].Type)
	require.NotNil(t, emitted[0].Artifact)
	assert.Equal(t, artifactID, emitted[0].Artifact.ID)
	assert.Equal(t, "circle", emitted[0].Artifact.Identifier)
	assert.Equal(t, model.ArtifactTypeSVG, emitted[0].Artifact.Type)
	// Raw content never travels on the wire.
	assert.Equal(t, "Circle", emitted[0].Artifact.Title)
}

func TestTranslator_MissingArtifactRowIsSilent(t *testing.T) {
	s, repo := newTranslatorService(t)

	artifactID := "11111111-2222-3333-4444-555555555555"
	repo.On("GetArtifact", context.Background(), artifactID).Return(nil, repository.ErrNotFound).Once()

	emitted, state := runTranslator(t, s, []llm.Event{
		{
			Type:     llm.EventToolResult,
			ToolName: "create_artifact",
			Result:   "Artifact created successfully: [artifact:" + artifactID + "] - Ghost",
		},
	})

	assert.Empty(t, emitted)
	// The id is still recorded: the turn did produce an artifact reference.
	assert.Equal(t, []string{artifactID}, state.artifactIDs)
}

func TestTranslator_ErrorPrefixedToolResultNeverReachesWire(t *testing.T) {
	s, _ := newTranslatorService(t)

	errResult := "Error: Purpose is too vague. Please describe what the artifact should do in more detail."
	emitted, state := runTranslator(t, s, []llm.Event{
		{Type: llm.EventToolResult, ToolName: "create_artifact", Result: errResult},
		{Type: llm.EventTextDelta, Delta: "Let me answer without an artifact."},
	})

	require.Len(t, emitted, 1)
	assert.Equal(t, model.TextEvent("Let me answer without an artifact."), emitted[0])
	for _, ev := range emitted {
		assert.NotContains(t, ev.Content, "Error:")
	}
	assert.Equal(t, "Let me answer without an artifact.", state.text.String())
}
