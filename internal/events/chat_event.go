package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventChunk   EventType = "chunk"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

const (
	ChatStart       = "events:chat:start"
	ChatChunk       = "events:chat:chunk"
	ChatDone        = "events:chat:done"
	ChatCancelled   = "events:chat:cancelled"
	ChatError       = "events:chat:error"
	SessionsChanged = "events:sessions:changed"
)

// ChatEvent is the payload pushed to the frontend while a reply is produced.
type ChatEvent struct {
	ID           string            `json:"id"`
	Type         EventType         `json:"type"`
	Message      string            `json:"message,omitempty"`
	Content      string            `json:"content,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
	SessionID    int64             `json:"sessionId,omitempty"`
	GenerationID string            `json:"generationId,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

type contextKey string

const (
	sessionContextKey    contextKey = "ollamachat/events/session"
	generationContextKey contextKey = "ollamachat/events/generation"
)

// WithSession annotates ctx so emitted events carry the session id.
func WithSession(ctx context.Context, sessionID int64) context.Context {
	if sessionID <= 0 {
		return ctx
	}
	return context.WithValue(ctx, sessionContextKey, sessionID)
}

func SessionFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(sessionContextKey).(int64); ok {
		return v
	}
	return 0
}

func WithGeneration(ctx context.Context, generationID string) context.Context {
	if generationID == "" {
		return ctx
	}
	return context.WithValue(ctx, generationContextKey, generationID)
}

func GenerationFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(generationContextKey).(string); ok {
		return v
	}
	return ""
}

func newEvent(eventType EventType, message string) ChatEvent {
	return ChatEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewChunk wraps one streamed fragment of assistant text.
func NewChunk(content string) ChatEvent {
	evt := newEvent(EventChunk, "")
	evt.Content = content
	return evt
}

func NewInfo(message string) ChatEvent {
	return newEvent(EventInfo, message)
}

func NewWarn(message string) ChatEvent {
	return newEvent(EventWarn, message)
}

func NewError(message string) ChatEvent {
	return newEvent(EventError, message)
}

func NewSuccess(message string) ChatEvent {
	return newEvent(EventSuccess, message)
}
