// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"vidtube/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumVideos   int
	ShouldClean bool
}

// Seeder populates the database with realistic test data.
type Seeder struct {
	db *gorm.DB
}

func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll wipes every application table. Order matters: children first.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"likes", "comments", "playlist_videos", "playlists",
		"watch_events", "subscriptions", "tweets", "videos", "users",
	}
	for _, t := range tables {
		if err := s.db.Exec("DELETE FROM " + t).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", t, err)
		}
	}
	log.Println("✓ Database cleared")
	return nil
}

// Seed populates the database per the options. All seeded users share the
// password "Password123".
func (s *Seeder) Seed(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.seedUsers(opts.NumUsers)
	if err != nil {
		return err
	}
	log.Printf("✓ %d users created", len(users))

	videos, err := s.seedVideos(users, opts.NumVideos)
	if err != nil {
		return err
	}
	log.Printf("✓ %d videos created", len(videos))

	if err := s.seedEngagement(users, videos); err != nil {
		return err
	}
	log.Println("✓ Engagement (comments, likes, subscriptions, playlists, tweets) created")

	return nil
}

func (s *Seeder) seedUsers(n int) ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		username := strings.ToLower(fmt.Sprintf("%s%d", gofakeit.Username(), i))
		user := &models.User{
			Username: username,
			Email:    strings.ToLower(fmt.Sprintf("%s@%s", username, gofakeit.DomainName())),
			FullName: gofakeit.Name(),
			Password: string(hash),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %q: %w", username, err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedVideos(users []*models.User, n int) ([]*models.Video, error) {
	videos := make([]*models.Video, 0, n)
	for i := 0; i < n; i++ {
		owner := users[rand.Intn(len(users))]
		video := &models.Video{
			Title:       gofakeit.Sentence(rand.Intn(5) + 3),
			Description: gofakeit.Paragraph(1, 3, 10, " "),
			OwnerID:     owner.ID,
			VideoURL:    gofakeit.URL(),
			VideoKey:    fmt.Sprintf("videos/%s.mp4", gofakeit.UUID()),
			Duration:    float64(rand.Intn(1800) + 30),
			Views:       int64(rand.Intn(100000)),
			IsPublished: rand.Intn(10) != 0,
		}
		if err := s.db.Create(video).Error; err != nil {
			return nil, fmt.Errorf("failed to create video: %w", err)
		}
		videos = append(videos, video)
	}
	return videos, nil
}

func (s *Seeder) seedEngagement(users []*models.User, videos []*models.Video) error {
	// Comments
	for _, v := range videos {
		for i := 0; i < rand.Intn(6); i++ {
			comment := &models.Comment{
				Content: gofakeit.Sentence(rand.Intn(12) + 2),
				OwnerID: users[rand.Intn(len(users))].ID,
				VideoID: v.ID,
			}
			if err := s.db.Create(comment).Error; err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
		}
	}

	// Video likes; the unique index absorbs duplicate picks
	for _, v := range videos {
		for i := 0; i < rand.Intn(8); i++ {
			vid := v.ID
			like := models.Like{UserID: users[rand.Intn(len(users))].ID, VideoID: &vid}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return fmt.Errorf("failed to create like: %w", err)
			}
		}
	}

	// Subscriptions
	for _, u := range users {
		for i := 0; i < rand.Intn(5); i++ {
			channel := users[rand.Intn(len(users))]
			if channel.ID == u.ID {
				continue
			}
			sub := models.Subscription{SubscriberID: u.ID, ChannelID: channel.ID}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&sub).Error; err != nil {
				return fmt.Errorf("failed to create subscription: %w", err)
			}
		}
	}

	// Playlists with member videos
	for _, u := range users {
		if rand.Intn(3) == 0 {
			continue
		}
		playlist := &models.Playlist{
			Name:        gofakeit.HipsterWord() + " favorites",
			Description: gofakeit.Sentence(6),
			OwnerID:     u.ID,
		}
		if err := s.db.Create(playlist).Error; err != nil {
			return fmt.Errorf("failed to create playlist: %w", err)
		}
		for i := 0; i < rand.Intn(6); i++ {
			pv := models.PlaylistVideo{
				PlaylistID: playlist.ID,
				VideoID:    videos[rand.Intn(len(videos))].ID,
			}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&pv).Error; err != nil {
				return fmt.Errorf("failed to create playlist video: %w", err)
			}
		}
	}

	// Tweets
	for _, u := range users {
		for i := 0; i < rand.Intn(4); i++ {
			tweet := &models.Tweet{
				Content: gofakeit.Sentence(rand.Intn(15) + 3),
				OwnerID: u.ID,
			}
			if err := s.db.Create(tweet).Error; err != nil {
				return fmt.Errorf("failed to create tweet: %w", err)
			}
		}
	}

	// Watch history
	for _, u := range users {
		for i := 0; i < rand.Intn(10); i++ {
			we := models.WatchEvent{UserID: u.ID, VideoID: videos[rand.Intn(len(videos))].ID}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&we).Error; err != nil {
				return fmt.Errorf("failed to create watch event: %w", err)
			}
		}
	}

	return nil
}
