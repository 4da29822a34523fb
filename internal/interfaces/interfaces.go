package interfaces

import (
	"context"

	"forge-ai/backend/internal/model"
	"forge-ai/backend/internal/service"
)

// This file defines the interfaces for our core services. Depending on these
// interfaces instead of concrete implementations decouples the API layer from
// the service layer and makes mocking in tests straightforward.

// ChatService defines the contract for chat-related business logic.
type ChatService interface {
	UpdateChatTitle(ctx context.Context, chatID, newTitle string) error
	DeleteChat(ctx context.Context, chatID string) error
	ListChats(ctx context.Context) ([]*model.Chat, error)
	GetFullChat(ctx context.Context, chatID string) (*model.FullChat, error)
	HandleNewMessage(ctx context.Context, req *service.StreamMessageRequest, out chan<- model.StreamEvent)
}
