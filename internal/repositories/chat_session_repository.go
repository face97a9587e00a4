package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ollamachat/internal/models"
)

type ChatSessionRepository interface {
	List(ctx context.Context) ([]models.ChatSession, error)
	FindByID(ctx context.Context, id int64) (*models.ChatSession, error)
	GetOrCreateByTitle(ctx context.Context, title string) (int64, error)
	Rename(ctx context.Context, id int64, title string) error
	Delete(ctx context.Context, id int64) error
}

type chatSessionRepository struct {
	db *gorm.DB
}

func NewChatSessionRepository(db *gorm.DB) ChatSessionRepository {
	return &chatSessionRepository{db: db}
}

// List returns sessions newest first.
func (r *chatSessionRepository) List(ctx context.Context) ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("listing chat sessions: %w", err)
	}
	return sessions, nil
}

// FindByID returns nil, nil when the session does not exist.
func (r *chatSessionRepository) FindByID(ctx context.Context, id int64) (*models.ChatSession, error) {
	var session models.ChatSession
	if err := r.db.WithContext(ctx).Take(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting chat session %d: %w", id, err)
	}
	return &session, nil
}

// GetOrCreateByTitle reuses a session whose title matches exactly, or inserts one.
func (r *chatSessionRepository) GetOrCreateByTitle(ctx context.Context, title string) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ChatSession
		err := tx.Where("title = ?", title).Order("id ASC").Take(&existing).Error
		if err == nil {
			id = existing.ID
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		created := models.ChatSession{Title: title}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		id = created.ID
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("get or create chat session %q: %w", title, err)
	}
	return id, nil
}

func (r *chatSessionRepository) Rename(ctx context.Context, id int64, title string) error {
	if err := r.db.WithContext(ctx).Model(&models.ChatSession{}).
		Where("id = ?", id).
		Update("title", title).Error; err != nil {
		return fmt.Errorf("renaming chat session %d: %w", id, err)
	}
	return nil
}

// Delete removes the session and its messages in one transaction.
func (r *chatSessionRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&models.ChatMessage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ChatSession{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("deleting chat session %d: %w", id, err)
	}
	return nil
}
