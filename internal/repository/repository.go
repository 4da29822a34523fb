package repository

import (
	"context"

	"forge-ai/backend/internal/model"
)

// Repository defines the interface for data storage operations.
// This interface makes it easy to switch database implementations.
type Repository interface {
	CreateChat(ctx context.Context, chat *model.Chat) error
	GetChat(ctx context.Context, chatID string) (*model.Chat, error)
	GetChats(ctx context.Context, userID string) ([]*model.Chat, error)
	UpdateChatTitle(ctx context.Context, chatID, newTitle string) error
	TouchChat(ctx context.Context, chatID string) error
	DeleteChat(ctx context.Context, chatID string) error

	CreateMessage(ctx context.Context, message *model.Message) error
	GetMessages(ctx context.Context, chatID string) ([]model.Message, error)
	UpdateMessageText(ctx context.Context, messageID, text string) error
	DeleteMessage(ctx context.Context, messageID string) error
	CountMessages(ctx context.Context, chatID string) (int, error)

	CreateArtifact(ctx context.Context, artifact *model.Artifact) error
	GetArtifact(ctx context.Context, artifactID string) (*model.Artifact, error)
	DeleteArtifactsByMessage(ctx context.Context, messageID string) error
}
