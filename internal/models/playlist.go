package models

import (
	"time"

	"gorm.io/gorm"
)

// Playlist is an owner-curated set of videos.
type Playlist struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	Owner       *User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// VideosCount is not persisted; computed at query time
	VideosCount int `gorm:"->" json:"videos_count"`
}

// PlaylistVideo is a membership row. The composite unique index forbids
// duplicate membership, giving the playlist set semantics.
type PlaylistVideo struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlaylistID uint      `gorm:"not null;index;uniqueIndex:idx_playlist_video" json:"playlist_id"`
	VideoID    uint      `gorm:"not null;uniqueIndex:idx_playlist_video" json:"video_id"`
	CreatedAt  time.Time `json:"created_at"`
}
