package repository

import (
	"context"
	"testing"

	"vidtube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaylistRepositoryMembership(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewPlaylistRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "curator")
	video := createTestVideo(t, db, owner.ID, "episode")
	playlist := &models.Playlist{Name: "Season", OwnerID: owner.ID}
	require.NoError(t, repo.Create(ctx, playlist))

	memberCount := func() int64 {
		var n int64
		require.NoError(t, db.Model(&models.PlaylistVideo{}).
			Where("playlist_id = ?", playlist.ID).Count(&n).Error)
		return n
	}

	require.NoError(t, repo.AddVideo(ctx, playlist.ID, video.ID))
	require.NoError(t, repo.AddVideo(ctx, playlist.ID, video.ID))
	assert.Equal(t, int64(1), memberCount(), "adding twice keeps set semantics")

	require.NoError(t, repo.RemoveVideo(ctx, playlist.ID, video.ID))
	assert.Equal(t, int64(0), memberCount())

	// Removing a video that is not a member is not an error.
	require.NoError(t, repo.RemoveVideo(ctx, playlist.ID, video.ID))
}

func TestPlaylistRepositoryDelete(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewPlaylistRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "curator")
	video := createTestVideo(t, db, owner.ID, "episode")
	playlist := &models.Playlist{Name: "Season", OwnerID: owner.ID}
	require.NoError(t, repo.Create(ctx, playlist))
	require.NoError(t, repo.AddVideo(ctx, playlist.ID, video.ID))

	require.NoError(t, repo.Delete(ctx, playlist.ID))

	got, err := repo.GetByID(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	var members int64
	require.NoError(t, db.Model(&models.PlaylistVideo{}).
		Where("playlist_id = ?", playlist.ID).Count(&members).Error)
	assert.Zero(t, members, "memberships go with the playlist")

	// The video itself is untouched.
	var videos int64
	require.NoError(t, db.Model(&models.Video{}).Where("id = ?", video.ID).Count(&videos).Error)
	assert.Equal(t, int64(1), videos)
}
