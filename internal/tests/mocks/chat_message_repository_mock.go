package mocks

import (
	"context"
	"sync"

	"ollamachat/internal/models"
	"ollamachat/internal/repositories"
)

// ChatMessageRepositoryMock records appended messages in memory unless the Func fields are set.
type ChatMessageRepositoryMock struct {
	AppendFunc        func(ctx context.Context, sessionID int64, role, content string) (*models.ChatMessage, error)
	ListBySessionFunc func(ctx context.Context, sessionID int64) ([]models.ChatMessage, error)

	mu       sync.Mutex
	Messages []models.ChatMessage
}

func (m *ChatMessageRepositoryMock) Append(ctx context.Context, sessionID int64, role, content string) (*models.ChatMessage, error) {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, sessionID, role, content)
	}
	if !models.IsValidSessionID(sessionID) {
		return nil, repositories.ErrNoActiveSession
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := models.ChatMessage{
		ID:        int64(len(m.Messages) + 1),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
	}
	m.Messages = append(m.Messages, msg)
	return &msg, nil
}

func (m *ChatMessageRepositoryMock) ListBySession(ctx context.Context, sessionID int64) ([]models.ChatMessage, error) {
	if m.ListBySessionFunc != nil {
		return m.ListBySessionFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.ChatMessage{}
	for _, msg := range m.Messages {
		if msg.SessionID == sessionID {
			out = append(out, msg)
		}
	}
	return out, nil
}

// Snapshot returns a copy of every recorded message.
func (m *ChatMessageRepositoryMock) Snapshot() []models.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ChatMessage(nil), m.Messages...)
}
