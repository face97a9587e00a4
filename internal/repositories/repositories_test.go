package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ollamachat/internal/database"
	"ollamachat/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(database.Config{
		Path:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel: logger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestAppConfigRepository_GetSet(t *testing.T) {
	ctx := context.Background()
	repo := NewAppConfigRepository(openTestDB(t))

	_, found, err := repo.Get(ctx, models.ConfigSelectedModel)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Set(ctx, models.ConfigSelectedModel, "llama3"))
	require.NoError(t, repo.Set(ctx, models.ConfigSelectedModel, "mistral"))

	value, found, err := repo.Get(ctx, models.ConfigSelectedModel)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "mistral", value)

	assert.Error(t, repo.Set(ctx, "", "x"))
}

func TestChatSessionRepository_GetOrCreateByTitle_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewChatSessionRepository(openTestDB(t))

	first, err := repo.GetOrCreateByTitle(ctx, "llama3: Recursion Basics")
	require.NoError(t, err)
	second, err := repo.GetOrCreateByTitle(ctx, "llama3: Recursion Basics")
	require.NoError(t, err)
	other, err := repo.GetOrCreateByTitle(ctx, "llama3: recursion basics")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)

	sessions, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, other, sessions[0].ID, "newest first")
}

func TestChatSessionRepository_FindRename(t *testing.T) {
	ctx := context.Background()
	repo := NewChatSessionRepository(openTestDB(t))

	missing, err := repo.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)

	id, err := repo.GetOrCreateByTitle(ctx, "old")
	require.NoError(t, err)
	require.NoError(t, repo.Rename(ctx, id, "new"))

	session, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "new", session.Title)
	assert.False(t, session.CreatedAt.IsZero())
}

func TestChatSessionRepository_DeleteRemovesMessages(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	sessions := NewChatSessionRepository(db)
	messages := NewChatMessageRepository(db)

	keep, err := sessions.GetOrCreateByTitle(ctx, "keep")
	require.NoError(t, err)
	drop, err := sessions.GetOrCreateByTitle(ctx, "drop")
	require.NoError(t, err)

	for _, id := range []int64{keep, drop} {
		_, err := messages.Append(ctx, id, models.RoleUser, "q")
		require.NoError(t, err)
		_, err = messages.Append(ctx, id, models.RoleAssistant, "a")
		require.NoError(t, err)
	}

	require.NoError(t, sessions.Delete(ctx, drop))

	gone, err := sessions.FindByID(ctx, drop)
	require.NoError(t, err)
	assert.Nil(t, gone)

	var orphaned int64
	require.NoError(t, db.Model(&models.ChatMessage{}).Where("session_id = ?", drop).Count(&orphaned).Error)
	assert.Zero(t, orphaned)

	kept, err := messages.ListBySession(ctx, keep)
	require.NoError(t, err)
	assert.Len(t, kept, 2)
}

func TestChatMessageRepository_AppendAndList(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	sessions := NewChatSessionRepository(db)
	messages := NewChatMessageRepository(db)

	id, err := sessions.GetOrCreateByTitle(ctx, "s")
	require.NoError(t, err)

	_, err = messages.Append(ctx, id, models.RoleUser, "Explain recursion")
	require.NoError(t, err)
	_, err = messages.Append(ctx, id, models.RoleAssistant, "")
	require.NoError(t, err)

	history, err := messages.ListBySession(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.RoleUser, history[0].Role)
	assert.Equal(t, "Explain recursion", history[0].Content)
	assert.Equal(t, models.RoleAssistant, history[1].Role)
	assert.Empty(t, history[1].Content)
	assert.Less(t, history[0].ID, history[1].ID)
}

func TestChatMessageRepository_NoSession(t *testing.T) {
	ctx := context.Background()
	messages := NewChatMessageRepository(openTestDB(t))

	_, err := messages.Append(ctx, models.NoSession, models.RoleUser, "x")
	assert.ErrorIs(t, err, ErrNoActiveSession)

	history, err := messages.ListBySession(ctx, models.NoSession)
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}
