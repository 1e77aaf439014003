package repository

import (
	"fmt"
	"testing"

	"vidtube/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.WatchEvent{}, &models.Video{}, &models.Comment{},
		&models.Like{}, &models.Subscription{}, &models.Playlist{},
		&models.PlaylistVideo{}, &models.Tweet{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "$2a$10$notarealhash",
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return u
}

func createTestVideo(t *testing.T, db *gorm.DB, ownerID uint, title string) *models.Video {
	t.Helper()
	v := &models.Video{
		Title:       title,
		OwnerID:     ownerID,
		VideoURL:    fmt.Sprintf("https://cdn.example.com/%s.mp4", title),
		IsPublished: true,
	}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("failed to create video %s: %v", title, err)
	}
	return v
}
