package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"forge-ai/backend/internal/config"
	app_errors "forge-ai/backend/internal/errors"
	"forge-ai/backend/internal/knowledge"
	"forge-ai/backend/internal/llm"
	"forge-ai/backend/internal/model"
	"forge-ai/backend/internal/repository"
	"forge-ai/backend/internal/tool"
	"forge-ai/backend/internal/trigger"
)

// maxToolSteps bounds how many rounds of tool calls the engine may run in one
// turn before it must answer in plain text. Two rounds cover the realistic
// case (search, then create) while preventing runaway tool loops.
const maxToolSteps = 2

// streamErrorMessage is the only error text a client ever sees on the stream.
const streamErrorMessage = "An error occurred while streaming the response."

const defaultUserID = "default-user"

// ChatService owns the chat streaming pipeline: tool activation, history
// building, engine streaming, event translation and persistence
// reconciliation, plus the thin chat management operations around it.
type ChatService struct {
	repo     repository.Repository
	engine   llm.Engine
	searcher knowledge.Searcher
	cfg      *config.Config
}

// StreamMessageRequest is a new message from the client. An empty ChatID
// starts a new conversation.
type StreamMessageRequest struct {
	ChatID  string `json:"chat_id"`
	Content string `json:"content" validate:"required,min=1"`
	Model   string `json:"model"`
}

func NewChatService(repo repository.Repository, engine llm.Engine, searcher knowledge.Searcher, cfg *config.Config) *ChatService {
	return &ChatService{repo: repo, engine: engine, searcher: searcher, cfg: cfg}
}

// UpdateChatTitle handles a manual title update.
func (s *ChatService) UpdateChatTitle(ctx context.Context, chatID, newTitle string) error {
	if strings.TrimSpace(newTitle) == "" {
		return fmt.Errorf("%w: title cannot be empty", app_errors.ErrValidation)
	}
	if err := s.repo.UpdateChatTitle(ctx, chatID, newTitle); err != nil {
		return fmt.Errorf("could not update title: %w", err)
	}
	return nil
}

// DeleteChat deletes a chat and all its related data.
func (s *ChatService) DeleteChat(ctx context.Context, chatID string) error {
	slog.Info("Deleting chat.", "chat_id", chatID)
	return s.repo.DeleteChat(ctx, chatID)
}

// ListChats retrieves all chats for the default user.
func (s *ChatService) ListChats(ctx context.Context) ([]*model.Chat, error) {
	return s.repo.GetChats(ctx, defaultUserID)
}

// GetFullChat retrieves a chat's metadata and all its messages.
func (s *ChatService) GetFullChat(ctx context.Context, chatID string) (*model.FullChat, error) {
	chat, err := s.repo.GetChat(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, app_errors.ErrNotFound
		}
		return nil, fmt.Errorf("could not get chat: %w", err)
	}
	messages, err := s.repo.GetMessages(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("could not get messages: %w", err)
	}
	return &model.FullChat{Chat: *chat, Messages: messages}, nil
}

// HandleNewMessage runs one turn of the streaming pipeline: it persists the
// user message, creates the placeholder assistant message, streams the
// engine's response through the event translator into out, and reconciles
// persistence when the stream ends. The channel is closed when the turn is
// over; on failure the caller sees exactly one error event and nothing after
// it.
func (s *ChatService) HandleNewMessage(ctx context.Context, req *StreamMessageRequest, out chan<- model.StreamEvent) {
	defer close(out)

	chat, err := s.getOrCreateChat(ctx, req)
	if err != nil {
		slog.Error("Could not resolve chat for new message.", "chat_id", req.ChatID, "error", err)
		_ = emit(ctx, out, model.ErrorEvent(streamErrorMessage))
		return
	}

	now := time.Now().UTC()
	userMessage := &model.Message{
		ID:        uuid.NewString(),
		ChatID:    chat.ID,
		Role:      model.RoleUser,
		Parts:     model.MessageParts{Text: req.Content},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateMessage(ctx, userMessage); err != nil {
		slog.Error("Could not persist user message.", "chat_id", chat.ID, "error", err)
		_ = emit(ctx, out, model.ErrorEvent(streamErrorMessage))
		return
	}

	// The placeholder exists before any engine call: its presence, not its
	// content, is what marks "a turn is in progress" for reconnecting
	// clients.
	placeholder, err := s.createPlaceholder(ctx, chat.ID)
	if err != nil {
		slog.Error("Could not create placeholder assistant message.", "chat_id", chat.ID, "error", err)
		_ = emit(ctx, out, model.ErrorEvent(streamErrorMessage))
		return
	}

	state := &streamState{}
	if err := s.streamTurn(ctx, chat, req, placeholder, state, out); err != nil {
		slog.Error("Streaming pipeline failed.", "chat_id", chat.ID, "message_id", placeholder.ID, "error", err)
		s.cleanupTurn(placeholder, state)
		_ = emit(ctx, out, model.ErrorEvent(streamErrorMessage))
		return
	}

	if err := s.finalizeTurn(ctx, chat, req.Content, placeholder, state); err != nil {
		slog.Error("Failed to finalize assistant message.", "chat_id", chat.ID, "message_id", placeholder.ID, "error", err)
		s.cleanupTurn(placeholder, state)
		_ = emit(ctx, out, model.ErrorEvent(streamErrorMessage))
	}
}

func (s *ChatService) getOrCreateChat(ctx context.Context, req *StreamMessageRequest) (*model.Chat, error) {
	if req.ChatID != "" {
		chat, err := s.repo.GetChat(ctx, req.ChatID)
		if err != nil {
			return nil, err
		}
		return chat, nil
	}

	modelName := req.Model
	if modelName == "" {
		modelName = s.cfg.MainModel
	}
	now := time.Now().UTC()
	chat := &model.Chat{
		ID:        uuid.NewString(),
		UserID:    defaultUserID,
		Title:     truncate(req.Content, 50),
		Model:     modelName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateChat(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func (s *ChatService) createPlaceholder(ctx context.Context, chatID string) (*model.Message, error) {
	now := time.Now().UTC()
	placeholder := &model.Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Role:      model.RoleAssistant,
		Parts:     model.MessageParts{Text: ""},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateMessage(ctx, placeholder); err != nil {
		return nil, err
	}
	return placeholder, nil
}

// streamTurn opens the completion call and drives the translator until the
// engine's stream ends.
func (s *ChatService) streamTurn(
	ctx context.Context,
	chat *model.Chat,
	req *StreamMessageRequest,
	placeholder *model.Message,
	state *streamState,
	out chan<- model.StreamEvent,
) error {
	modelName := s.resolveModel(chat, req)
	tools := s.activateTools(req.Content, modelName, placeholder.ID)

	history, err := s.buildHistory(ctx, chat.ID, placeholder.ID)
	if err != nil {
		return fmt.Errorf("could not build history: %w", err)
	}

	genReq := &llm.GenerateRequest{
		Model:    modelName,
		System:   buildSystemPrompt(tools),
		Messages: history,
		Tools:    tool.Definitions(tools),
		MaxSteps: maxToolSteps,
	}

	events := make(chan llm.Event)
	engineErr := make(chan error, 1)
	go func() {
		engineErr <- s.engine.GenerateStream(ctx, genReq, events)
	}()

	if err := s.translateEvents(ctx, events, out, state); err != nil {
		return err
	}
	return <-engineErr
}

func (s *ChatService) resolveModel(chat *model.Chat, req *StreamMessageRequest) string {
	if req.Model != "" {
		return req.Model
	}
	if chat.Model != "" {
		return chat.Model
	}
	return s.cfg.MainModel
}

// activateTools decides which tools this turn carries. Knowledge search is
// always available on tool-capable models; the artifact and scaffold tools
// are gated by the trigger vocabularies so their schemas are only paid for
// when the message plausibly asks for them.
func (s *ChatService) activateTools(content, modelName, messageID string) []tool.Tool {
	if !s.cfg.ModelSupportsTools(modelName) {
		return nil
	}

	tools := []tool.Tool{tool.NewKnowledgeSearchTool(s.searcher)}
	if trigger.Matches(content, trigger.ArtifactTriggers) {
		artifactTool := tool.NewArtifactCreationTool(s.repo, s.engine, s.cfg.ArtifactModel)
		artifactTool.SetMessageID(messageID)
		tools = append(tools, artifactTool)
	}
	if trigger.Matches(content, trigger.ScaffoldTriggers) {
		tools = append(tools, tool.NewScaffoldGenerationTool())
	}
	return tools
}

// buildHistory reconstructs the prior turns as role-tagged messages in
// creation order. The placeholder for the in-flight turn is excluded; the
// full remaining history is always sent.
func (s *ChatService) buildHistory(ctx context.Context, chatID, excludeID string) ([]llm.Message, error) {
	messages, err := s.repo.GetMessages(ctx, chatID)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.ID == excludeID {
			continue
		}
		history = append(history, llm.Message{Role: msg.Role, Content: msg.Parts.Text})
	}
	return history, nil
}

// finalizeTurn reconciles persistence after a successful stream: a turn with
// visible output fills the placeholder, a fully empty turn leaves no trace.
func (s *ChatService) finalizeTurn(
	ctx context.Context,
	chat *model.Chat,
	userContent string,
	placeholder *model.Message,
	state *streamState,
) error {
	if !state.hasOutput() {
		return s.repo.DeleteMessage(ctx, placeholder.ID)
	}

	responseText := state.text.String()
	if err := s.repo.UpdateMessageText(ctx, placeholder.ID, responseText); err != nil {
		return fmt.Errorf("could not update assistant message: %w", err)
	}
	if err := s.repo.TouchChat(ctx, chat.ID); err != nil {
		return fmt.Errorf("could not touch chat: %w", err)
	}

	count, err := s.repo.CountMessages(ctx, chat.ID)
	if err != nil {
		// The title checkpoint is best-effort; the turn itself succeeded.
		slog.Warn("Could not count messages for title checkpoint.", "chat_id", chat.ID, "error", err)
		return nil
	}
	if count == 2 || (count > 0 && count%10 == 0) {
		go s.generateTitle(context.Background(), chat.ID, userContent, responseText)
	}
	return nil
}

// cleanupTurn reconciles a turn that failed mid-stream. A turn that already
// produced visible text keeps it: the partial response is written to the
// placeholder and nothing is rolled back. A turn with no visible text is
// fully undone: artifacts already attached to the placeholder are removed
// first, then the placeholder itself. Cleanup runs on a background context so
// a client disconnect cannot abort it.
func (s *ChatService) cleanupTurn(placeholder *model.Message, state *streamState) {
	ctx := context.Background()

	if state.text.Len() > 0 {
		if err := s.repo.UpdateMessageText(ctx, placeholder.ID, state.text.String()); err != nil {
			slog.Error("Failed to persist partial response of failed turn.", "message_id", placeholder.ID, "error", err)
		}
		return
	}

	if err := s.repo.DeleteArtifactsByMessage(ctx, placeholder.ID); err != nil {
		slog.Error("Failed to delete artifacts of failed turn.", "message_id", placeholder.ID, "error", err)
	}
	if err := s.repo.DeleteMessage(ctx, placeholder.ID); err != nil {
		slog.Error("Failed to delete placeholder of failed turn.", "message_id", placeholder.ID, "error", err)
	}
}

// generateTitle asks the title model for a short conversation title and
// stores it. Runs fire-and-forget from the finalize path.
func (s *ChatService) generateTitle(ctx context.Context, chatID, userQuery, assistantResponse string) {
	prompt := fmt.Sprintf(
		"Based on the following conversation, what would be a good title?\n\n---\nUser: %s\n\nAssistant: %s\n---",
		truncate(userQuery, 150),
		truncate(assistantResponse, 200),
	)

	resp, err := s.engine.Generate(ctx, &llm.GenerateRequest{
		Model:  s.cfg.TitleModel,
		System: "You are an expert at creating short, concise titles for conversations. Respond with only the title, and nothing else.",
		Messages: []llm.Message{
			{Role: model.RoleUser, Content: prompt},
		},
	})
	if err != nil {
		slog.Warn("Failed to generate chat title.", "chat_id", chatID, "error", err)
		return
	}

	newTitle := strings.TrimSpace(resp.Response)
	newTitle = strings.Trim(newTitle, `"'`)
	if newTitle == "" {
		slog.Debug("Generated title was empty after cleaning, keeping current title.", "chat_id", chatID)
		return
	}

	if err := s.repo.UpdateChatTitle(ctx, chatID, newTitle); err != nil {
		slog.Warn("Failed to store generated chat title.", "chat_id", chatID, "error", err)
	}
}

// truncate shortens a string to a specified number of runes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
