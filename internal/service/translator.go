package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"forge-ai/backend/internal/llm"
	"forge-ai/backend/internal/model"
	"forge-ai/backend/internal/repository"
	"forge-ai/backend/internal/tool"
)

// streamState accumulates what a turn produced while events flow to the
// client: the full response text (the value eventually persisted) and the ids
// of artifacts created by tool calls. Nothing is ever un-appended; tool
// results that are errors or match no known marker leave the state untouched.
type streamState struct {
	text        strings.Builder
	artifactIDs []string
}

func (st *streamState) hasOutput() bool {
	return st.text.Len() > 0 || len(st.artifactIDs) > 0
}

// translateEvents consumes the engine's event stream and forwards wire events
// to out in upstream order, one emission per event, no batching. It returns
// when the engine closes its channel or the context is canceled.
func (s *ChatService) translateEvents(
	ctx context.Context,
	events <-chan llm.Event,
	out chan<- model.StreamEvent,
	state *streamState,
) error {
	for ev := range events {
		switch ev.Type {
		case llm.EventTextDelta:
			state.text.WriteString(ev.Delta)
			if err := emit(ctx, out, model.TextEvent(ev.Delta)); err != nil {
				return err
			}
		case llm.EventToolResult:
			if err := s.translateToolResult(ctx, ev, out, state); err != nil {
				return err
			}
		default:
			// Tool-call announcements and the terminal signal carry no
			// client-visible payload.
		}
	}
	return nil
}

// translateToolResult turns a tool's return string into visible text and
// artifact events according to the marker protocol. Error-prefixed and
// unrecognized results are absorbed silently so tool internals never leak
// into the transcript.
func (s *ChatService) translateToolResult(
	ctx context.Context,
	ev llm.Event,
	out chan<- model.StreamEvent,
	state *streamState,
) error {
	result := ev.Result
	failed := strings.HasPrefix(result, "Error:")

	switch ev.ToolName {
	case tool.ScaffoldToolName:
		if !failed {
			content := "\n\n" + result
			state.text.WriteString(content)
			if err := emit(ctx, out, model.TextEvent(content)); err != nil {
				return err
			}
		}
	case tool.KnowledgeToolName:
		if tool.KnowledgeMarker.MatchString(result) {
			if idx := strings.Index(result, "\n\n"); idx >= 0 {
				content := "\n\n**Knowledge Base Results:**" + result[idx+2:]
				state.text.WriteString(content)
				if err := emit(ctx, out, model.TextEvent(content)); err != nil {
					return err
				}
			}
		}
	}

	// Any tool may create an artifact as a side effect; the marker is the
	// only signal.
	if m := tool.ArtifactMarker.FindStringSubmatch(result); m != nil {
		artifactID := m[1]
		state.artifactIDs = append(state.artifactIDs, artifactID)

		artifact, err := s.repo.GetArtifact(ctx, artifactID)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				slog.Warn("Artifact lookup failed, skipping artifact event.", "artifact_id", artifactID, "error", err)
			}
			return nil
		}
		return emit(ctx, out, model.ArtifactEvent(artifact))
	}
	return nil
}

func emit(ctx context.Context, out chan<- model.StreamEvent, ev model.StreamEvent) error {
	select {
	case out <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
