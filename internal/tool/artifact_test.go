package tool_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"forge-ai/backend/internal/llm"
	mock_llm "forge-ai/backend/internal/llm/mocks"
	"forge-ai/backend/internal/model"
	mock_repo "forge-ai/backend/internal/repository/mocks"
	"forge-ai/backend/internal/tool"
)

func TestArtifactCreationTool_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("purpose too short", func(t *testing.T) {
		artifactTool := tool.NewArtifactCreationTool(mock_repo.NewMockRepository(t), mock_llm.NewMockEngine(t), "gen-model")
		artifactTool.SetMessageID("msg-1")

		result := artifactTool.Execute(ctx, map[string]any{
			"name":    "Circle",
			"purpose": "short",
			"type":    "svg",
		})
		assert.Equal(t, "Error: Purpose is too vague. Please describe what the artifact should do in more detail.", result)
	})

	t.Run("message context not set", func(t *testing.T) {
		artifactTool := tool.NewArtifactCreationTool(mock_repo.NewMockRepository(t), mock_llm.NewMockEngine(t), "gen-model")

		result := artifactTool.Execute(ctx, map[string]any{
			"name":    "Circle",
			"purpose": "a simple svg of a circle",
			"type":    "svg",
		})
		assert.Equal(t, "Error: Message context not set. Cannot create artifact.", result)
	})
}

func TestArtifactCreationTool_Success(t *testing.T) {
	ctx := context.Background()
	repo := mock_repo.NewMockRepository(t)
	engine := mock_llm.NewMockEngine(t)

	engine.On("Generate", ctx, mock.AnythingOfType("*llm.GenerateRequest")).
		Return(&llm.GenerateResponse{Response: "```svg\n<svg><circle r=\"5\"/></svg>\n```"}, nil).Once()

	var created *model.Artifact
	repo.On("CreateArtifact", ctx, mock.AnythingOfType("*model.Artifact")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.Artifact)
		}).Return(nil).Once()

	artifactTool := tool.NewArtifactCreationTool(repo, engine, "gen-model")
	artifactTool.SetMessageID("msg-1")

	result := artifactTool.Execute(ctx, map[string]any{
		"name":    "Circle",
		"purpose": "a simple svg of a circle",
		"type":    "svg",
	})

	require.NotNil(t, created)
	assert.Equal(t, "msg-1", created.MessageID)
	assert.Equal(t, model.ArtifactTypeSVG, created.Type)
	assert.Equal(t, "circle", created.Identifier)
	assert.Equal(t, "Circle", created.Title)
	assert.Equal(t, 1, created.Version)
	// Fence wrapper must be stripped before persisting.
	assert.Equal(t, `<svg><circle r="5"/></svg>`, created.Content)

	assert.Equal(t, "Artifact created successfully: [artifact:"+created.ID+"] - Circle", result)

	m := tool.ArtifactMarker.FindStringSubmatch(result)
	require.NotNil(t, m, "return string must carry the artifact marker")
	assert.Equal(t, created.ID, m[1])
}

func TestArtifactCreationTool_UnknownTypeDefaultsToHTML(t *testing.T) {
	ctx := context.Background()
	repo := mock_repo.NewMockRepository(t)
	engine := mock_llm.NewMockEngine(t)

	engine.On("Generate", ctx, mock.Anything).
		Return(&llm.GenerateResponse{Response: "<html></html>"}, nil).Once()

	var created *model.Artifact
	repo.On("CreateArtifact", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.Artifact)
		}).Return(nil).Once()

	artifactTool := tool.NewArtifactCreationTool(repo, engine, "gen-model")
	artifactTool.SetMessageID("msg-1")

	artifactTool.Execute(ctx, map[string]any{
		"name":    "Page",
		"purpose": "a simple landing page",
		"type":    "something-unknown",
	})

	require.NotNil(t, created)
	assert.Equal(t, model.ArtifactTypeHTML, created.Type)
}

func TestArtifactCreationTool_StripsImportsForReact(t *testing.T) {
	ctx := context.Background()
	repo := mock_repo.NewMockRepository(t)
	engine := mock_llm.NewMockEngine(t)

	generated := "import React from 'react';\nimport { useState } from 'react';\n\nfunction Counter() {\n  return null;\n}"
	engine.On("Generate", ctx, mock.Anything).
		Return(&llm.GenerateResponse{Response: generated}, nil).Once()

	var created *model.Artifact
	repo.On("CreateArtifact", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.Artifact)
		}).Return(nil).Once()

	artifactTool := tool.NewArtifactCreationTool(repo, engine, "gen-model")
	artifactTool.SetMessageID("msg-1")

	artifactTool.Execute(ctx, map[string]any{
		"name":    "Counter",
		"purpose": "a simple counter component",
		"type":    "react",
	})

	require.NotNil(t, created)
	assert.NotContains(t, created.Content, "import")
	assert.Contains(t, created.Content, "function Counter()")
}

func TestArtifactCreationTool_GenerationFailure(t *testing.T) {
	ctx := context.Background()
	repo := mock_repo.NewMockRepository(t)
	engine := mock_llm.NewMockEngine(t)

	engine.On("Generate", ctx, mock.Anything).
		Return(nil, assert.AnError).Once()

	artifactTool := tool.NewArtifactCreationTool(repo, engine, "gen-model")
	artifactTool.SetMessageID("msg-1")

	result := artifactTool.Execute(ctx, map[string]any{
		"name":    "Circle",
		"purpose": "a simple svg of a circle",
		"type":    "svg",
	})
	assert.Equal(t, "Error: Artifact content generation is not available right now.", result)
}
