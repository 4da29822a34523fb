package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"forge-ai/backend/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateChat(ctx context.Context, chat *model.Chat) error {
	query := "INSERT INTO chats (id, user_id, title, model, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, chat.ID, chat.UserID, chat.Title, chat.Model, chat.CreatedAt, chat.UpdatedAt)
	return err
}

func (r *sqliteRepository) GetChat(ctx context.Context, chatID string) (*model.Chat, error) {
	query := "SELECT id, user_id, title, model, created_at, updated_at FROM chats WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, chatID)
	var chat model.Chat
	err := row.Scan(&chat.ID, &chat.UserID, &chat.Title, &chat.Model, &chat.CreatedAt, &chat.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &chat, nil
}

func (r *sqliteRepository) GetChats(ctx context.Context, userID string) ([]*model.Chat, error) {
	query := "SELECT id, user_id, title, model, created_at, updated_at FROM chats WHERE user_id = ? ORDER BY updated_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []*model.Chat
	for rows.Next() {
		var chat model.Chat
		if err := rows.Scan(&chat.ID, &chat.UserID, &chat.Title, &chat.Model, &chat.CreatedAt, &chat.UpdatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, &chat)
	}
	return chats, rows.Err()
}

func (r *sqliteRepository) UpdateChatTitle(ctx context.Context, chatID, newTitle string) error {
	query := "UPDATE chats SET title = ?, updated_at = ? WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, newTitle, time.Now().UTC(), chatID)
	return err
}

func (r *sqliteRepository) TouchChat(ctx context.Context, chatID string) error {
	query := "UPDATE chats SET updated_at = ? WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, time.Now().UTC(), chatID)
	return err
}

func (r *sqliteRepository) DeleteChat(ctx context.Context, chatID string) error {
	query := "DELETE FROM chats WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, chatID)
	return err
}

func (r *sqliteRepository) CreateMessage(ctx context.Context, message *model.Message) error {
	parts, err := json.Marshal(message.Parts)
	if err != nil {
		return fmt.Errorf("could not marshal message parts: %w", err)
	}

	query := "INSERT INTO messages (id, chat_id, role, parts, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	_, err = r.db.ExecContext(ctx, query,
		message.ID,
		message.ChatID,
		message.Role,
		string(parts),
		message.CreatedAt,
		message.UpdatedAt,
	)
	return err
}

func (r *sqliteRepository) GetMessages(ctx context.Context, chatID string) ([]model.Message, error) {
	query := `
		SELECT id, chat_id, role, parts, created_at, updated_at
		FROM messages
		WHERE chat_id = ?
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var msg model.Message
		var parts string
		if err := rows.Scan(&msg.ID, &msg.ChatID, &msg.Role, &parts, &msg.CreatedAt, &msg.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(parts), &msg.Parts); err != nil {
			return nil, fmt.Errorf("could not unmarshal parts for message %s: %w", msg.ID, err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *sqliteRepository) UpdateMessageText(ctx context.Context, messageID, text string) error {
	parts, err := json.Marshal(model.MessageParts{Text: text})
	if err != nil {
		return fmt.Errorf("could not marshal message parts: %w", err)
	}
	query := "UPDATE messages SET parts = ?, updated_at = ? WHERE id = ?"
	_, err = r.db.ExecContext(ctx, query, string(parts), time.Now().UTC(), messageID)
	return err
}

func (r *sqliteRepository) DeleteMessage(ctx context.Context, messageID string) error {
	query := "DELETE FROM messages WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, messageID)
	return err
}

func (r *sqliteRepository) CountMessages(ctx context.Context, chatID string) (int, error) {
	query := "SELECT COUNT(*) FROM messages WHERE chat_id = ?"
	row := r.db.QueryRowContext(ctx, query, chatID)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *sqliteRepository) CreateArtifact(ctx context.Context, artifact *model.Artifact) error {
	query := `
		INSERT INTO artifacts (id, message_id, identifier, type, title, language, content, version, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		artifact.ID,
		artifact.MessageID,
		artifact.Identifier,
		string(artifact.Type),
		artifact.Title,
		artifact.Language,
		artifact.Content,
		artifact.Version,
		artifact.CreatedAt,
	)
	return err
}

func (r *sqliteRepository) GetArtifact(ctx context.Context, artifactID string) (*model.Artifact, error) {
	query := "SELECT id, message_id, identifier, type, title, language, content, version, created_at FROM artifacts WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, artifactID)

	var a model.Artifact
	var artifactType string
	var language sql.NullString
	err := row.Scan(&a.ID, &a.MessageID, &a.Identifier, &artifactType, &a.Title, &language, &a.Content, &a.Version, &a.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	a.Type = model.ArtifactType(artifactType)
	if language.Valid {
		a.Language = &language.String
	}
	return &a, nil
}

func (r *sqliteRepository) DeleteArtifactsByMessage(ctx context.Context, messageID string) error {
	query := "DELETE FROM artifacts WHERE message_id = ?"
	_, err := r.db.ExecContext(ctx, query, messageID)
	return err
}
