package repository

import (
	"context"
	"errors"

	"vidtube/internal/cache"
	"vidtube/internal/models"

	"gorm.io/gorm"
)

// VideoRepository defines the interface for video data operations
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id uint) (*models.Video, error)
	Update(ctx context.Context, video *models.Video) error
	SetPublished(ctx context.Context, id uint, published bool) error
	IncrementViews(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoRepository) GetByID(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).First(&video, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Save(video).Error; err != nil {
		return err
	}
	cache.InvalidateVideo(ctx, video.ID)
	return nil
}

func (r *videoRepository) SetPublished(ctx context.Context, id uint, published bool) error {
	err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		Update("is_published", published).Error
	if err == nil {
		cache.InvalidateVideo(ctx, id)
	}
	return err
}

// IncrementViews bumps the view counter with a single atomic update; the
// counter only ever moves forward. The cached detail row is left alone so
// anonymous reads keep hitting the cache; the count catches up when the
// entry expires.
func (r *videoRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// Delete removes a video and everything referencing it: its comments, the
// likes on the video and on those comments, playlist memberships, and watch
// history entries. The cascade runs inside one transaction so a mid-cascade
// failure never leaves orphaned rows.
func (r *videoRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).
			Where("video_id = ?", id).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}

		if err := tx.Where("video_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.WatchEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Video{}, id).Error
	})
	if err == nil {
		cache.InvalidateVideo(ctx, id)
	}
	return err
}
