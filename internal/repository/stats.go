package repository

import (
	"context"

	"vidtube/internal/models"

	"gorm.io/gorm"
)

// StatsRepository computes channel dashboard aggregates.
type StatsRepository interface {
	ChannelStats(ctx context.Context, channelID uint) (*models.ChannelStats, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) ChannelStats(ctx context.Context, channelID uint) (*models.ChannelStats, error) {
	stats := &models.ChannelStats{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Video{}).
		Where("owner_id = ?", channelID).
		Count(&stats.TotalVideos).Error; err != nil {
		return nil, err
	}

	var views *int64
	if err := db.Model(&models.Video{}).
		Where("owner_id = ?", channelID).
		Select("SUM(views)").
		Scan(&views).Error; err != nil {
		return nil, err
	}
	if views != nil {
		stats.TotalViews = *views
	}

	if err := db.Model(&models.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&stats.TotalSubscribers).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Like{}).
		Joins("JOIN videos ON videos.id = likes.video_id").
		Where("videos.owner_id = ? AND videos.deleted_at IS NULL", channelID).
		Count(&stats.TotalLikes).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
