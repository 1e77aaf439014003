package service

import (
	"context"
	"strings"
	"testing"

	"vidtube/internal/models"
	"vidtube/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tweetTestRepo() *tweetRepoStub {
	repo := noopTweetRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Tweet, error) {
		if id == 3 {
			return &models.Tweet{ID: 3, Content: "old", OwnerID: 5}, nil
		}
		return nil, nil
	}
	return repo
}

func TestTweetCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("trims and creates", func(t *testing.T) {
		t.Parallel()
		svc := NewTweetService(tweetTestRepo(), &viewsStub{})
		tweet, err := svc.Create(ctx, 5, "  shipping today  ")
		require.NoError(t, err)
		assert.Equal(t, "shipping today", tweet.Content)
		assert.Equal(t, uint(5), tweet.OwnerID)
	})

	t.Run("length limit", func(t *testing.T) {
		t.Parallel()
		svc := NewTweetService(tweetTestRepo(), &viewsStub{})
		_, err := svc.Create(ctx, 5, strings.Repeat("a", 281))
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeInvalidArgument, appErr.Code)

		_, err = svc.Create(ctx, 5, strings.Repeat("a", 280))
		require.NoError(t, err)
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		svc := NewTweetService(tweetTestRepo(), &viewsStub{})
		_, err := svc.Create(ctx, 5, "   ")
		require.Error(t, err)
	})
}

func TestTweetOwnership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("owner updates", func(t *testing.T) {
		t.Parallel()
		svc := NewTweetService(tweetTestRepo(), &viewsStub{})
		tweet, err := svc.Update(ctx, 5, 3, "edited")
		require.NoError(t, err)
		assert.Equal(t, "edited", tweet.Content)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		t.Parallel()
		svc := NewTweetService(tweetTestRepo(), &viewsStub{})
		_, err := svc.Update(ctx, 9, 3, "hijack")
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeForbidden, appErr.Code)
	})

	t.Run("missing tweet", func(t *testing.T) {
		t.Parallel()
		svc := NewTweetService(tweetTestRepo(), &viewsStub{})
		err := svc.Delete(ctx, 5, 99)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}

func TestTweetListByOwner(t *testing.T) {
	t.Parallel()
	views := &viewsStub{}
	svc := NewTweetService(tweetTestRepo(), views)

	_, err := svc.ListByOwner(context.Background(), 5, 9, view.Params{})
	require.NoError(t, err)
	assert.Equal(t, view.UserTweetsView, views.lastView)
	assert.Equal(t, "5", views.lastParams.Filters["owner"])
	assert.Equal(t, uint(9), views.lastCaller)
}
