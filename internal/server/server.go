// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"log"
	"time"

	"vidtube/internal/cache"
	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/middleware"
	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/service"
	"vidtube/internal/storage"
	"vidtube/internal/view"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client
	app    *fiber.App

	userRepo     repository.UserRepository
	videoRepo    repository.VideoRepository
	commentRepo  repository.CommentRepository
	likeRepo     repository.LikeRepository
	subRepo      repository.SubscriptionRepository
	playlistRepo repository.PlaylistRepository
	tweetRepo    repository.TweetRepository
	statsRepo    repository.StatsRepository

	views view.Runner
	store storage.ObjectStorage

	userService      *service.UserService
	videoService     *service.VideoService
	commentService   *service.CommentService
	likeService      *service.LikeService
	subService       *service.SubscriptionService
	playlistService  *service.PlaylistService
	tweetService     *service.TweetService
	dashboardService *service.DashboardService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	store, err := storage.NewMinioStorage(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	return NewServerWithDeps(cfg, db, redisClient, store), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests and bootstrap layers that establish DB/Redis/storage themselves use
// this constructor.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store storage.ObjectStorage) *Server {
	middleware.InitMiddleware(cfg)

	s := &Server{
		config:       cfg,
		db:           db,
		redis:        redisClient,
		userRepo:     repository.NewUserRepository(db),
		videoRepo:    repository.NewVideoRepository(db),
		commentRepo:  repository.NewCommentRepository(db),
		likeRepo:     repository.NewLikeRepository(db),
		subRepo:      repository.NewSubscriptionRepository(db),
		playlistRepo: repository.NewPlaylistRepository(db),
		tweetRepo:    repository.NewTweetRepository(db),
		statsRepo:    repository.NewStatsRepository(db),
		views:        view.NewBuilder(db),
		store:        store,
	}

	s.userService = service.NewUserService(s.userRepo, s.store, s.views, cfg)
	s.videoService = service.NewVideoService(s.videoRepo, s.userRepo, s.store, s.views)
	s.commentService = service.NewCommentService(s.commentRepo, s.videoRepo, s.views)
	s.likeService = service.NewLikeService(s.likeRepo, s.videoRepo, s.commentRepo, s.tweetRepo, s.views)
	s.subService = service.NewSubscriptionService(s.subRepo, s.userRepo, s.views)
	s.playlistService = service.NewPlaylistService(s.playlistRepo, s.videoRepo, s.views)
	s.tweetService = service.NewTweetService(s.tweetRepo, s.views)
	s.dashboardService = service.NewDashboardService(s.statsRepo, s.views)

	return s
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/refresh", s.RefreshToken)
	auth.Post("/logout", middleware.AuthRequired, s.Logout)

	// Account routes (the caller's own profile)
	me := api.Group("/users/me", middleware.AuthRequired)
	me.Get("/", s.GetMe)
	me.Patch("/", s.UpdateMe)
	me.Post("/change-password", s.ChangePassword)
	me.Patch("/avatar", s.UpdateAvatar)
	me.Patch("/cover", s.UpdateCover)
	me.Get("/history", s.GetWatchHistory)

	// Channel routes (public profile by username)
	channels := api.Group("/channels", middleware.OptionalAuth)
	channels.Get("/:username", s.GetChannelProfile)

	// Video routes
	videos := api.Group("/videos")
	videos.Get("/", middleware.OptionalAuth, s.ListVideos)
	videos.Post("/", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "publish_video"), s.PublishVideo)
	videos.Get("/:id/comments", middleware.OptionalAuth, s.ListComments)
	videos.Post("/:id/comments", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.AddComment)
	videos.Patch("/:id/toggle-publish", middleware.AuthRequired, s.TogglePublish)
	videos.Get("/:id", middleware.OptionalAuth, s.GetVideo)
	videos.Patch("/:id", middleware.AuthRequired, s.UpdateVideo)
	videos.Delete("/:id", middleware.AuthRequired, s.DeleteVideo)

	// Comment routes (update/delete by comment id)
	comments := api.Group("/comments", middleware.AuthRequired)
	comments.Patch("/:id", s.UpdateComment)
	comments.Delete("/:id", s.DeleteComment)

	// Like routes
	likes := api.Group("/likes", middleware.AuthRequired)
	likes.Post("/toggle/video/:id", s.ToggleVideoLike)
	likes.Post("/toggle/comment/:id", s.ToggleCommentLike)
	likes.Post("/toggle/tweet/:id", s.ToggleTweetLike)
	likes.Get("/videos", s.GetLikedVideos)

	// Subscription routes
	api.Post("/subscriptions/channel/:channelId", middleware.AuthRequired, s.ToggleSubscription)
	api.Get("/subscriptions/channel/:channelId/subscribers", middleware.OptionalAuth, s.GetChannelSubscribers)
	api.Get("/subscriptions/user/:userId", middleware.OptionalAuth, s.GetSubscribedChannels)

	// Playlist routes
	playlists := api.Group("/playlists")
	playlists.Post("/", middleware.AuthRequired, s.CreatePlaylist)
	playlists.Get("/:id", middleware.OptionalAuth, s.GetPlaylist)
	playlists.Patch("/:id/videos/:videoId", middleware.AuthRequired, s.AddPlaylistVideo)
	playlists.Delete("/:id/videos/:videoId", middleware.AuthRequired, s.RemovePlaylistVideo)
	playlists.Patch("/:id", middleware.AuthRequired, s.UpdatePlaylist)
	playlists.Delete("/:id", middleware.AuthRequired, s.DeletePlaylist)

	// Tweet routes
	tweets := api.Group("/tweets")
	tweets.Post("/", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 15, time.Minute, "create_tweet"), s.CreateTweet)
	tweets.Patch("/:id", middleware.AuthRequired, s.UpdateTweet)
	tweets.Delete("/:id", middleware.AuthRequired, s.DeleteTweet)

	// Per-user public listings
	users := api.Group("/users", middleware.OptionalAuth)
	users.Get("/:userId/tweets", s.GetUserTweets)
	users.Get("/:userId/playlists", s.GetUserPlaylists)

	// Channel owner dashboard
	dashboard := api.Group("/dashboard", middleware.AuthRequired)
	dashboard.Get("/stats", s.GetChannelStats)
	dashboard.Get("/videos", s.GetChannelVideos)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The cache is optional; readiness degrades, it does not fail.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "VidTube API",
		BodyLimit: 256 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
