package service

import (
	"context"
	"strconv"
	"strings"

	"vidtube/internal/cache"
	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/storage"
	"vidtube/internal/validation"
	"vidtube/internal/view"
)

type VideoService struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
	store     storage.ObjectStorage
	views     view.Runner
}

type PublishVideoInput struct {
	OwnerID     uint
	Title       string
	Description string
	Duration    float64
	Video       *FileUpload
	Thumbnail   *FileUpload
}

type UpdateVideoInput struct {
	UserID      uint
	VideoID     uint
	Title       string
	Description string
	Thumbnail   *FileUpload
}

func NewVideoService(
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
	store storage.ObjectStorage,
	views view.Runner,
) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		store:     store,
		views:     views,
	}
}

// ListVideos returns a page of the video catalog. Unpublished videos appear
// only in their owner's listings.
func (s *VideoService) ListVideos(ctx context.Context, callerID uint, p view.Params) (*view.Page, error) {
	return s.views.Build(ctx, view.VideoListView, callerID, p)
}

// GetVideo returns the full detail view for one video and records the watch:
// the view count increments and, for signed-in callers, the video lands in
// their watch history. Anonymous requests for the detail page are served
// through the cache.
func (s *VideoService) GetVideo(ctx context.Context, videoID, callerID uint) (view.Row, error) {
	run := func() (view.Row, error) {
		page, err := s.views.Build(ctx, view.VideoDetailView, callerID, view.Params{
			Filters: map[string]string{"id": strconv.FormatUint(uint64(videoID), 10)},
		})
		if err != nil {
			return nil, err
		}
		return page.Items[0], nil
	}

	var row view.Row
	var err error
	if callerID == 0 {
		err = cache.CacheAside(ctx, cache.VideoKey(videoID), &row, cache.VideoTTL, func() error {
			fetched, ferr := run()
			if ferr != nil {
				return ferr
			}
			row = fetched
			return nil
		})
	} else {
		row, err = run()
	}
	if err != nil {
		return nil, err
	}

	// Side effects happen after the read so the view stays a pure query.
	if err := s.videoRepo.IncrementViews(ctx, videoID); err != nil {
		return nil, err
	}
	if callerID != 0 {
		if err := s.userRepo.AddWatchEvent(ctx, callerID, videoID); err != nil {
			return nil, err
		}
	}
	return row, nil
}

// PublishVideo uploads the media and creates the video as an unpublished
// draft. The owner makes it visible with TogglePublish.
func (s *VideoService) PublishVideo(ctx context.Context, in PublishVideoInput) (*models.Video, error) {
	if err := validation.ValidateTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateDescription(in.Description); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Video == nil || in.Video.Reader == nil {
		return nil, models.NewValidationError("Video file is required")
	}
	if !strings.HasPrefix(in.Video.ContentType, "video/") {
		return nil, models.NewValidationError("File must be a video")
	}

	videoRes, err := s.store.Upload(ctx, in.Video.Reader, in.Video.Size, in.Video.ContentType, "videos")
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	video := &models.Video{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		OwnerID:     in.OwnerID,
		VideoURL:    videoRes.URL,
		VideoKey:    videoRes.Key,
		Duration:    in.Duration,
		IsPublished: false,
	}

	if in.Thumbnail != nil && in.Thumbnail.Reader != nil {
		if !strings.HasPrefix(in.Thumbnail.ContentType, "image/") {
			return nil, models.NewValidationError("Thumbnail must be an image")
		}
		thumbRes, err := s.store.Upload(ctx, in.Thumbnail.Reader, in.Thumbnail.Size, in.Thumbnail.ContentType, "thumbnails")
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		video.ThumbnailURL = thumbRes.URL
		video.ThumbnailKey = thumbRes.Key
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *VideoService) UpdateVideo(ctx context.Context, in UpdateVideoInput) (*models.Video, error) {
	video, err := s.ownedVideo(ctx, in.VideoID, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		if err := validation.ValidateTitle(in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		video.Title = strings.TrimSpace(in.Title)
	}
	if in.Description != "" {
		if err := validation.ValidateDescription(in.Description); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		video.Description = in.Description
	}

	var oldThumbKey string
	if in.Thumbnail != nil && in.Thumbnail.Reader != nil {
		if !strings.HasPrefix(in.Thumbnail.ContentType, "image/") {
			return nil, models.NewValidationError("Thumbnail must be an image")
		}
		res, err := s.store.Upload(ctx, in.Thumbnail.Reader, in.Thumbnail.Size, in.Thumbnail.ContentType, "thumbnails")
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		oldThumbKey = video.ThumbnailKey
		video.ThumbnailURL = res.URL
		video.ThumbnailKey = res.Key
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	if oldThumbKey != "" {
		_ = s.store.Delete(ctx, oldThumbKey)
	}
	return video, nil
}

// TogglePublish flips the video between published and unpublished.
func (s *VideoService) TogglePublish(ctx context.Context, videoID, userID uint) (*models.Video, error) {
	video, err := s.ownedVideo(ctx, videoID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.videoRepo.SetPublished(ctx, videoID, !video.IsPublished); err != nil {
		return nil, err
	}
	video.IsPublished = !video.IsPublished
	return video, nil
}

// DeleteVideo removes the video and everything hanging off it (comments,
// likes, playlist memberships, watch history), then drops the media objects.
func (s *VideoService) DeleteVideo(ctx context.Context, videoID, userID uint) error {
	video, err := s.ownedVideo(ctx, videoID, userID)
	if err != nil {
		return err
	}

	if err := s.videoRepo.Delete(ctx, videoID); err != nil {
		return err
	}

	// Storage cleanup is best-effort once the row cascade has committed.
	_ = s.store.Delete(ctx, video.VideoKey)
	if video.ThumbnailKey != "" {
		_ = s.store.Delete(ctx, video.ThumbnailKey)
	}
	return nil
}

func (s *VideoService) ownedVideo(ctx context.Context, videoID, userID uint) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, models.NewNotFoundError("Video", videoID)
	}
	if video.OwnerID != userID {
		return nil, models.NewForbiddenError("You can only modify your own videos")
	}
	return video, nil
}
