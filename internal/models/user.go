// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account. A user is also a channel: other users
// subscribe to it and its published videos form the channel's catalog.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"unique;not null" json:"username"`
	Email        string         `gorm:"unique;not null" json:"email"`
	FullName     string         `json:"full_name"`
	Password     string         `gorm:"not null" json:"-"`
	RefreshToken string         `json:"-"`
	AvatarURL    string         `json:"avatar_url"`
	AvatarKey    string         `json:"-"`
	CoverURL     string         `json:"cover_url"`
	CoverKey     string         `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Channel aggregates are computed at query time, never persisted.
	SubscribersCount  int  `gorm:"->" json:"subscribers_count,omitempty"`
	SubscribedToCount int  `gorm:"->" json:"subscribed_to_count,omitempty"`
	IsSubscribed      bool `gorm:"->" json:"is_subscribed,omitempty"`
}

// WatchEvent records that a user watched a video. The (user, video) pair is
// unique, so re-watching never duplicates history.
type WatchEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_watch_user_video" json:"user_id"`
	VideoID   uint      `gorm:"not null;uniqueIndex:idx_watch_user_video" json:"video_id"`
	CreatedAt time.Time `json:"created_at"`
}
