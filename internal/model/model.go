package model

import (
	"time"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Chat stores metadata about a conversation.
type Chat struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UserID    string    `json:"user_id"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageParts is the structured payload of a message. It is stored as JSON so
// additional part kinds can be added later, but text is the only part this
// backend reads or writes.
type MessageParts struct {
	Text string `json:"text"`
}

// Message stores a single turn in a chat. An assistant message exists from the
// moment its turn begins streaming; its text stays empty until finalized.
type Message struct {
	ID        string       `json:"id"`
	ChatID    string       `json:"chat_id"`
	Role      string       `json:"role"`
	Parts     MessageParts `json:"parts"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// FullChat includes the chat metadata and all its messages.
type FullChat struct {
	Chat
	Messages []Message `json:"messages"`
}

// ArtifactType enumerates the kinds of generated content an artifact can hold.
type ArtifactType string

const (
	ArtifactTypeCode     ArtifactType = "code"
	ArtifactTypeMarkdown ArtifactType = "markdown"
	ArtifactTypeHTML     ArtifactType = "html"
	ArtifactTypeSVG      ArtifactType = "svg"
	ArtifactTypeMermaid  ArtifactType = "mermaid"
	ArtifactTypeReact    ArtifactType = "react"
	ArtifactTypeVue      ArtifactType = "vue"
)

// ParseArtifactType maps a requested type string to an ArtifactType.
// Unknown values fall back to html, which renders in any sandbox.
func ParseArtifactType(s string) ArtifactType {
	switch ArtifactType(s) {
	case ArtifactTypeCode, ArtifactTypeMarkdown, ArtifactTypeHTML,
		ArtifactTypeSVG, ArtifactTypeMermaid, ArtifactTypeReact, ArtifactTypeVue:
		return ArtifactType(s)
	default:
		return ArtifactTypeHTML
	}
}

// Language returns the syntax-highlighting language derived from the artifact
// type, or nil when no single language applies (plain code artifacts).
func (t ArtifactType) Language() *string {
	var lang string
	switch t {
	case ArtifactTypeMarkdown:
		lang = "markdown"
	case ArtifactTypeHTML:
		lang = "html"
	case ArtifactTypeSVG:
		lang = "xml"
	case ArtifactTypeMermaid:
		lang = "mermaid"
	case ArtifactTypeReact, ArtifactTypeVue:
		lang = "javascript"
	default:
		return nil
	}
	return &lang
}

// Artifact is a named, typed content blob generated by the artifact tool
// during a turn. Artifacts are immutable once created; they are only ever
// removed as part of cleaning up a failed or empty assistant turn.
type Artifact struct {
	ID         string       `json:"id"`
	MessageID  string       `json:"message_id"`
	Identifier string       `json:"identifier"`
	Type       ArtifactType `json:"type"`
	Title      string       `json:"title"`
	Language   *string      `json:"language"`
	Content    string       `json:"content"`
	Version    int          `json:"version"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Stream event discriminators.
const (
	StreamEventText     = "text"
	StreamEventArtifact = "artifact"
	StreamEventError    = "error"
)

// ArtifactRef is the wire-level view of an artifact. It deliberately omits
// the raw content so artifact events stay small; clients fetch content
// separately when they render the artifact.
type ArtifactRef struct {
	ID         string       `json:"id"`
	Identifier string       `json:"identifier"`
	Type       ArtifactType `json:"type"`
	Title      string       `json:"title"`
	Language   *string      `json:"language"`
}

// StreamEvent is one frame of the streamed response. Exactly one of Content
// or Artifact is populated depending on Type. Events are serialized as
// newline-delimited JSON, one event per line.
type StreamEvent struct {
	Type     string       `json:"type"`
	Content  string       `json:"content,omitempty"`
	Artifact *ArtifactRef `json:"artifact,omitempty"`
}

// TextEvent builds a text stream event.
func TextEvent(content string) StreamEvent {
	return StreamEvent{Type: StreamEventText, Content: content}
}

// ArtifactEvent builds an artifact stream event from a persisted artifact.
func ArtifactEvent(a *Artifact) StreamEvent {
	return StreamEvent{Type: StreamEventArtifact, Artifact: &ArtifactRef{
		ID:         a.ID,
		Identifier: a.Identifier,
		Type:       a.Type,
		Title:      a.Title,
		Language:   a.Language,
	}}
}

// ErrorEvent builds an error stream event.
func ErrorEvent(content string) StreamEvent {
	return StreamEvent{Type: StreamEventError, Content: content}
}
