package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ollamachat/internal/models"
)

// ErrNoActiveSession is returned when a message is appended without a session.
var ErrNoActiveSession = errors.New("no active chat session found")

type ChatMessageRepository interface {
	Append(ctx context.Context, sessionID int64, role, content string) (*models.ChatMessage, error)
	ListBySession(ctx context.Context, sessionID int64) ([]models.ChatMessage, error)
}

type chatMessageRepository struct {
	db *gorm.DB
}

func NewChatMessageRepository(db *gorm.DB) ChatMessageRepository {
	return &chatMessageRepository{db: db}
}

func (r *chatMessageRepository) Append(ctx context.Context, sessionID int64, role, content string) (*models.ChatMessage, error) {
	if !models.IsValidSessionID(sessionID) {
		return nil, ErrNoActiveSession
	}
	msg := &models.ChatMessage{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
	}
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, fmt.Errorf("failed to save chat history: %w", err)
	}
	return msg, nil
}

// ListBySession returns messages in insertion order. Unknown or sentinel ids yield an empty slice.
func (r *chatMessageRepository) ListBySession(ctx context.Context, sessionID int64) ([]models.ChatMessage, error) {
	messages := []models.ChatMessage{}
	if !models.IsValidSessionID(sessionID) {
		return messages, nil
	}
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("loading chat history for session %d: %w", sessionID, err)
	}
	return messages, nil
}
