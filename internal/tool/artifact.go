package tool

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"forge-ai/backend/internal/llm"
	"forge-ai/backend/internal/model"
	"forge-ai/backend/internal/repository"
)

// ArtifactToolName is the name the artifact tool is advertised under.
const ArtifactToolName = "create_artifact"

// ArtifactMarker matches the [artifact:<uuid>] token embedded in the tool's
// return string. The stream translator scans tool results with this exact
// pattern, so the bracket syntax is part of the internal protocol.
var ArtifactMarker = regexp.MustCompile(`\[artifact:([0-9a-fA-F-]{36})\]`)

var importLine = regexp.MustCompile(`(?m)^\s*import\s.*$`)

// ArtifactCreationTool generates a content artifact (code, markup, diagram,
// component) via a dedicated completion call and persists it attached to the
// assistant message being streamed.
type ArtifactCreationTool struct {
	repo      repository.Repository
	engine    llm.Engine
	model     string
	messageID string
}

// NewArtifactCreationTool builds the tool. The owning message id must be
// injected with SetMessageID before the tool executes.
func NewArtifactCreationTool(repo repository.Repository, engine llm.Engine, generationModel string) *ArtifactCreationTool {
	return &ArtifactCreationTool{repo: repo, engine: engine, model: generationModel}
}

// SetMessageID injects the per-turn owning message context.
func (t *ArtifactCreationTool) SetMessageID(id string) {
	t.messageID = id
}

func (t *ArtifactCreationTool) Name() string { return ArtifactToolName }

func (t *ArtifactCreationTool) Description() string {
	return "Create a visual or interactive artifact (code, markdown, html, svg, mermaid diagram, react or vue component) that renders in the user's workspace."
}

func (t *ArtifactCreationTool) Parameters() llm.Parameters {
	return llm.Parameters{
		Type: "object",
		Properties: map[string]any{
			"name": map[string]any{
				"type":        "string",
				"description": "Short human-readable name for the artifact",
			},
			"purpose": map[string]any{
				"type":        "string",
				"description": "What the artifact should do, in detail (at least 10 characters)",
			},
			"type": map[string]any{
				"type":        "string",
				"description": "Artifact type",
				"enum":        []string{"code", "markdown", "html", "svg", "mermaid", "react", "vue"},
			},
			"requirements": map[string]any{
				"type":        "string",
				"description": "Optional extra requirements or constraints",
			},
		},
		Required: []string{"name", "purpose", "type"},
	}
}

func (t *ArtifactCreationTool) Execute(ctx context.Context, args map[string]any) string {
	name := stringArg(args, "name")
	purpose := stringArg(args, "purpose")
	requirements := stringArg(args, "requirements")
	artifactType := model.ParseArtifactType(stringArg(args, "type"))

	if len(purpose) < 10 {
		return "Error: Purpose is too vague. Please describe what the artifact should do in more detail."
	}
	if t.messageID == "" {
		return "Error: Message context not set. Cannot create artifact."
	}

	content, err := t.generateContent(ctx, name, purpose, requirements, artifactType)
	if err != nil {
		slog.Error("Artifact content generation failed.", "name", name, "type", artifactType, "error", err)
		return "Error: Artifact content generation is not available right now."
	}

	artifact := &model.Artifact{
		ID:         uuid.NewString(),
		MessageID:  t.messageID,
		Identifier: slugify(name),
		Type:       artifactType,
		Title:      name,
		Language:   artifactType.Language(),
		Content:    content,
		Version:    1,
		CreatedAt:  time.Now().UTC(),
	}
	if err := t.repo.CreateArtifact(ctx, artifact); err != nil {
		slog.Error("Failed to persist artifact.", "name", name, "error", err)
		return "Error: Could not save the artifact."
	}

	return fmt.Sprintf("Artifact created successfully: [artifact:%s] - %s", artifact.ID, name)
}

// generateContent runs a dedicated completion with a type-specific system
// prompt and normalizes the output for the rendering sandbox.
func (t *ArtifactCreationTool) generateContent(ctx context.Context, name, purpose, requirements string, artifactType model.ArtifactType) (string, error) {
	prompt := fmt.Sprintf("Create %q.\n\nPurpose: %s", name, purpose)
	if requirements != "" {
		prompt += "\n\nRequirements: " + requirements
	}

	resp, err := t.engine.Generate(ctx, &llm.GenerateRequest{
		Model:    t.model,
		System:   generationPrompt(artifactType),
		Messages: []llm.Message{{Role: model.RoleUser, Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	content := stripCodeFences(resp.Response)
	if artifactType == model.ArtifactTypeReact || artifactType == model.ArtifactTypeVue {
		// The rendering sandbox injects framework globals, so import
		// statements would only break evaluation.
		content = strings.TrimLeft(importLine.ReplaceAllString(content, ""), "\n")
	}
	return content, nil
}

func generationPrompt(artifactType model.ArtifactType) string {
	switch artifactType {
	case model.ArtifactTypeSVG:
		return "You generate standalone SVG markup. Output only the <svg> element, no explanation and no code fences."
	case model.ArtifactTypeMermaid:
		return "You generate Mermaid diagram definitions. Output only the diagram source, no explanation and no code fences."
	case model.ArtifactTypeReact:
		return "You generate a single self-contained React function component. React is available as a global; do not use import statements. Output only the component source."
	case model.ArtifactTypeVue:
		return "You generate a single self-contained Vue single-file component. Vue is available as a global; do not use import statements. Output only the component source."
	case model.ArtifactTypeMarkdown:
		return "You generate well-structured Markdown documents. Output only the document."
	case model.ArtifactTypeCode:
		return "You generate clean, runnable code. Output only the code, no explanation and no code fences."
	default:
		return "You generate complete standalone HTML documents with inline CSS and JavaScript. Output only the document, no explanation and no code fences."
	}
}

// stripCodeFences removes a markdown fence wrapper if the model added one.
func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return trimmed
	}
	lines = lines[1:] // opening fence with optional language tag
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
