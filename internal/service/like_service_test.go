package service

import (
	"context"
	"testing"

	"vidtube/internal/models"
	"vidtube/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLikeService(likeRepo *likeRepoStub) *LikeService {
	videoRepo := noopVideoRepo()
	videoRepo.getByIDFn = func(_ context.Context, id uint) (*models.Video, error) {
		switch id {
		case 1:
			return publishedVideo(1, 5), nil
		case 2:
			draft := publishedVideo(2, 5)
			draft.IsPublished = false
			return draft, nil
		default:
			return nil, nil
		}
	}
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		if id == 4 {
			return &models.Comment{ID: 4, OwnerID: 9, VideoID: 1}, nil
		}
		return nil, nil
	}
	tweetRepo := noopTweetRepo()
	tweetRepo.getByIDFn = func(_ context.Context, id uint) (*models.Tweet, error) {
		if id == 6 {
			return &models.Tweet{ID: 6, OwnerID: 5}, nil
		}
		return nil, nil
	}
	return NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo, &viewsStub{})
}

func TestToggleVideoLike(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("published video", func(t *testing.T) {
		t.Parallel()
		likeRepo := noopLikeRepo()
		likeRepo.toggleVideoFn = func(_ context.Context, userID, videoID uint) (bool, error) {
			assert.Equal(t, uint(9), userID)
			assert.Equal(t, uint(1), videoID)
			return true, nil
		}
		liked, err := newLikeService(likeRepo).ToggleVideoLike(ctx, 9, 1)
		require.NoError(t, err)
		assert.True(t, liked)
	})

	t.Run("stranger cannot like a draft", func(t *testing.T) {
		t.Parallel()
		_, err := newLikeService(noopLikeRepo()).ToggleVideoLike(ctx, 9, 2)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})

	t.Run("owner can like their own draft", func(t *testing.T) {
		t.Parallel()
		_, err := newLikeService(noopLikeRepo()).ToggleVideoLike(ctx, 5, 2)
		require.NoError(t, err)
	})

	t.Run("missing video", func(t *testing.T) {
		t.Parallel()
		_, err := newLikeService(noopLikeRepo()).ToggleVideoLike(ctx, 9, 99)
		require.Error(t, err)
	})
}

func TestToggleCommentAndTweetLikes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("existing comment", func(t *testing.T) {
		t.Parallel()
		likeRepo := noopLikeRepo()
		likeRepo.toggleCommentFn = func(context.Context, uint, uint) (bool, error) { return true, nil }
		liked, err := newLikeService(likeRepo).ToggleCommentLike(ctx, 9, 4)
		require.NoError(t, err)
		assert.True(t, liked)
	})

	t.Run("missing comment", func(t *testing.T) {
		t.Parallel()
		_, err := newLikeService(noopLikeRepo()).ToggleCommentLike(ctx, 9, 99)
		require.Error(t, err)
	})

	t.Run("existing tweet", func(t *testing.T) {
		t.Parallel()
		_, err := newLikeService(noopLikeRepo()).ToggleTweetLike(ctx, 9, 6)
		require.NoError(t, err)
	})

	t.Run("missing tweet", func(t *testing.T) {
		t.Parallel()
		_, err := newLikeService(noopLikeRepo()).ToggleTweetLike(ctx, 9, 99)
		require.Error(t, err)
	})
}

func TestLikedVideosSetsUserFilter(t *testing.T) {
	t.Parallel()
	views := &viewsStub{}
	svc := NewLikeService(noopLikeRepo(), noopVideoRepo(), noopCommentRepo(), noopTweetRepo(), views)

	_, err := svc.LikedVideos(context.Background(), 9, view.Params{})
	require.NoError(t, err)
	assert.Equal(t, view.LikedVideosView, views.lastView)
	assert.Equal(t, "9", views.lastParams.Filters["user"])
	assert.Equal(t, uint(9), views.lastCaller)
}
