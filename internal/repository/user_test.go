package repository

import (
	"context"
	"testing"

	"vidtube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryCreate(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Username: "MixedCase",
		Email:    "Mixed@Example.COM",
		Password: "hash",
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, "mixedcase", user.Username)
	assert.Equal(t, "mixed@example.com", user.Email)

	dup := &models.User{Username: "mixedcase", Email: "other@example.com", Password: "hash"}
	assert.Error(t, repo.Create(ctx, dup), "usernames are unique")
}

func TestUserRepositoryGetByIdentifier(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := createTestUser(t, db, "finder")

	t.Run("by username", func(t *testing.T) {
		got, err := repo.GetByIdentifier(ctx, "finder")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("by email with stray case and space", func(t *testing.T) {
		got, err := repo.GetByIdentifier(ctx, "  Finder@Example.com ")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("missing user is nil without error", func(t *testing.T) {
		got, err := repo.GetByIdentifier(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestUserRepositoryExistsByUsernameOrEmail(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "taken")

	exists, err := repo.ExistsByUsernameOrEmail(ctx, "TAKEN", "fresh@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsernameOrEmail(ctx, "fresh", "Taken@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsernameOrEmail(ctx, "fresh", "fresh@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepositoryTokenAndPasswordUpdates(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "rotator")

	require.NoError(t, repo.UpdateRefreshToken(ctx, user.ID, "new-refresh"))
	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "new-hash"))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "new-refresh", got.RefreshToken)
	assert.Equal(t, "new-hash", got.Password)

	require.NoError(t, repo.UpdateRefreshToken(ctx, user.ID, ""))
	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.RefreshToken)
}

func TestUserRepositoryAddWatchEvent(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "viewer")
	owner := createTestUser(t, db, "creator")
	video := createTestVideo(t, db, owner.ID, "rewatchable")

	require.NoError(t, repo.AddWatchEvent(ctx, user.ID, video.ID))
	require.NoError(t, repo.AddWatchEvent(ctx, user.ID, video.ID))

	var count int64
	require.NoError(t, db.Model(&models.WatchEvent{}).
		Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "re-watching never duplicates history")

	other := createTestVideo(t, db, owner.ID, "second")
	require.NoError(t, repo.AddWatchEvent(ctx, user.ID, other.ID))
	require.NoError(t, db.Model(&models.WatchEvent{}).
		Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
