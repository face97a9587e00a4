package unit_tests

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ollamachat/internal/models"
	"ollamachat/internal/services"
	"ollamachat/internal/tests/mocks"
)

func TestChatSessionService_LoadChatSessions_EmptyIsNotNil(t *testing.T) {
	service := services.NewChatSessionService(&mocks.ChatSessionRepositoryMock{}, services.NewGenerationState())
	service.Startup(context.Background())

	sessions, err := service.LoadChatSessions()
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestChatSessionService_LoadChatSessions_PassesThroughOrder(t *testing.T) {
	repo := &mocks.ChatSessionRepositoryMock{
		ListFunc: func(ctx context.Context) ([]models.ChatSession, error) {
			return []models.ChatSession{{ID: 3, Title: "c"}, {ID: 1, Title: "a"}}, nil
		},
	}
	service := services.NewChatSessionService(repo, services.NewGenerationState())

	sessions, err := service.LoadChatSessions()
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, int64(3), sessions[0].ID)
}

func TestChatSessionService_UpdateChatSessionName(t *testing.T) {
	var gotID int64
	var gotTitle string
	repo := &mocks.ChatSessionRepositoryMock{
		RenameFunc: func(ctx context.Context, id int64, title string) error {
			gotID, gotTitle = id, title
			return nil
		},
	}
	service := services.NewChatSessionService(repo, services.NewGenerationState())

	require.NoError(t, service.UpdateChatSessionName(4, "  Trip planning  "))
	assert.Equal(t, int64(4), gotID)
	assert.Equal(t, "Trip planning", gotTitle)
}

func TestChatSessionService_UpdateChatSessionName_Validation(t *testing.T) {
	repo := &mocks.ChatSessionRepositoryMock{
		RenameFunc: func(ctx context.Context, id int64, title string) error {
			t.Fatal("rename must not reach the repository")
			return nil
		},
	}
	service := services.NewChatSessionService(repo, services.NewGenerationState())

	err := service.UpdateChatSessionName(1, "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")

	err = service.UpdateChatSessionName(1, strings.Repeat("x", 256))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 255")
}

func TestChatSessionService_DeleteCurrentSessionClearsSelection(t *testing.T) {
	state := services.NewGenerationState()
	state.SetCurrentSessionID(5)
	var deleted int64
	repo := &mocks.ChatSessionRepositoryMock{
		DeleteFunc: func(ctx context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	service := services.NewChatSessionService(repo, state)

	require.NoError(t, service.DeleteChatSession(5))
	assert.Equal(t, int64(5), deleted)
	assert.Equal(t, models.NoSession, state.CurrentSessionID())
}

func TestChatSessionService_DeleteOtherSessionKeepsSelection(t *testing.T) {
	state := services.NewGenerationState()
	state.SetCurrentSessionID(5)
	service := services.NewChatSessionService(&mocks.ChatSessionRepositoryMock{}, state)

	require.NoError(t, service.DeleteChatSession(6))
	assert.Equal(t, int64(5), state.CurrentSessionID())
}

func TestChatSessionService_DeleteFailureKeepsSelection(t *testing.T) {
	state := services.NewGenerationState()
	state.SetCurrentSessionID(5)
	repo := &mocks.ChatSessionRepositoryMock{
		DeleteFunc: func(ctx context.Context, id int64) error { return assert.AnError },
	}
	service := services.NewChatSessionService(repo, state)

	assert.Error(t, service.DeleteChatSession(5))
	assert.Equal(t, int64(5), state.CurrentSessionID())
}
