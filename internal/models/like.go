package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Like records that a user liked exactly one target: a video, a comment, or a
// tweet. The per-target composite unique indexes make a (user, target) pair
// insertable at most once, which is what keeps the toggle operation atomic
// under concurrent requests.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_like_video;uniqueIndex:idx_like_comment;uniqueIndex:idx_like_tweet" json:"user_id"`
	VideoID   *uint     `gorm:"uniqueIndex:idx_like_video" json:"video_id,omitempty"`
	CommentID *uint     `gorm:"uniqueIndex:idx_like_comment" json:"comment_id,omitempty"`
	TweetID   *uint     `gorm:"uniqueIndex:idx_like_tweet" json:"tweet_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate enforces the exactly-one-target invariant.
func (l *Like) BeforeCreate(*gorm.DB) error {
	targets := 0
	for _, t := range []*uint{l.VideoID, l.CommentID, l.TweetID} {
		if t != nil {
			targets++
		}
	}
	if targets != 1 {
		return errors.New("like must reference exactly one of video, comment, tweet")
	}
	return nil
}
