package repository

import (
	"context"

	"vidtube/internal/cache"
	"vidtube/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository toggles likes. Toggle returns the resulting state: true when
// the like now exists, false when it was removed.
type LikeRepository interface {
	ToggleVideo(ctx context.Context, userID, videoID uint) (bool, error)
	ToggleComment(ctx context.Context, userID, commentID uint) (bool, error)
	ToggleTweet(ctx context.Context, userID, tweetID uint) (bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) ToggleVideo(ctx context.Context, userID, videoID uint) (bool, error) {
	liked, err := r.toggle(ctx, "video_id", videoID, models.Like{UserID: userID, VideoID: &videoID}, userID)
	if err == nil {
		cache.InvalidateVideo(ctx, videoID)
	}
	return liked, err
}

func (r *likeRepository) ToggleComment(ctx context.Context, userID, commentID uint) (bool, error) {
	return r.toggle(ctx, "comment_id", commentID, models.Like{UserID: userID, CommentID: &commentID}, userID)
}

func (r *likeRepository) ToggleTweet(ctx context.Context, userID, tweetID uint) (bool, error) {
	return r.toggle(ctx, "tweet_id", tweetID, models.Like{UserID: userID, TweetID: &tweetID}, userID)
}

// toggle flips the (user, target) pair without a separate existence check.
// The conditional delete and the ON CONFLICT DO NOTHING insert are each
// atomic against the composite unique index, so two concurrent toggles can
// never produce a duplicate row: the losing insert simply affects zero rows
// and is reported as "now present".
func (r *likeRepository) toggle(ctx context.Context, targetCol string, targetID uint, like models.Like, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND "+targetCol+" = ?", userID, targetID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	ins := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like)
	if ins.Error != nil {
		return false, ins.Error
	}
	return true, nil
}
