package models

import "time"

// Subscription records that a user (the subscriber) follows another user's
// channel. The composite unique index gives the toggle its atomicity; a user
// never subscribes to the same channel twice.
type Subscription struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubscriberID uint      `gorm:"not null;index;uniqueIndex:idx_sub_pair" json:"subscriber_id"`
	ChannelID    uint      `gorm:"not null;index;uniqueIndex:idx_sub_pair" json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`
}
