package models

import (
	"time"

	"gorm.io/gorm"
)

// Video represents an uploaded video. Media lives in object storage; the row
// keeps only the public URL and the storage key needed for later deletion.
type Video struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Title        string  `gorm:"not null" json:"title"`
	Description  string  `gorm:"type:text" json:"description"`
	OwnerID      uint    `gorm:"not null;index" json:"owner_id"`
	Owner        *User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	VideoURL     string  `gorm:"not null" json:"video_url"`
	VideoKey     string  `json:"-"`
	ThumbnailURL string  `json:"thumbnail_url"`
	ThumbnailKey string  `json:"-"`
	Duration     float64 `json:"duration"`
	Views        int64   `gorm:"not null;default:0" json:"views"`
	IsPublished  bool    `gorm:"not null;default:false;index" json:"is_published"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
