package mocks

import (
	"context"

	"ollamachat/internal/models"
)

type ChatSessionRepositoryMock struct {
	ListFunc               func(ctx context.Context) ([]models.ChatSession, error)
	FindByIDFunc           func(ctx context.Context, id int64) (*models.ChatSession, error)
	GetOrCreateByTitleFunc func(ctx context.Context, title string) (int64, error)
	RenameFunc             func(ctx context.Context, id int64, title string) error
	DeleteFunc             func(ctx context.Context, id int64) error
}

func (m *ChatSessionRepositoryMock) List(ctx context.Context) ([]models.ChatSession, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *ChatSessionRepositoryMock) FindByID(ctx context.Context, id int64) (*models.ChatSession, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *ChatSessionRepositoryMock) GetOrCreateByTitle(ctx context.Context, title string) (int64, error) {
	if m.GetOrCreateByTitleFunc != nil {
		return m.GetOrCreateByTitleFunc(ctx, title)
	}
	return 1, nil
}

func (m *ChatSessionRepositoryMock) Rename(ctx context.Context, id int64, title string) error {
	if m.RenameFunc != nil {
		return m.RenameFunc(ctx, id, title)
	}
	return nil
}

func (m *ChatSessionRepositoryMock) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
