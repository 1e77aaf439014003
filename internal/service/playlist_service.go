package service

import (
	"context"
	"strconv"
	"strings"

	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/validation"
	"vidtube/internal/view"
)

type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
	views        view.Runner
}

type CreatePlaylistInput struct {
	OwnerID     uint
	Name        string
	Description string
}

type UpdatePlaylistInput struct {
	UserID      uint
	PlaylistID  uint
	Name        string
	Description string
}

func NewPlaylistService(
	playlistRepo repository.PlaylistRepository,
	videoRepo repository.VideoRepository,
	views view.Runner,
) *PlaylistService {
	return &PlaylistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
		views:        views,
	}
}

func (s *PlaylistService) Create(ctx context.Context, in CreatePlaylistInput) (*models.Playlist, error) {
	if err := validation.ValidateTitle(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateDescription(in.Description); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	playlist := &models.Playlist{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		OwnerID:     in.OwnerID,
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// Get returns the playlist detail view with its member videos. Unpublished
// member videos are visible only to their owners.
func (s *PlaylistService) Get(ctx context.Context, playlistID, callerID uint) (view.Row, error) {
	page, err := s.views.Build(ctx, view.PlaylistView, callerID, view.Params{
		Filters: map[string]string{"id": strconv.FormatUint(uint64(playlistID), 10)},
	})
	if err != nil {
		return nil, err
	}
	return page.Items[0], nil
}

// ListByOwner pages through a user's playlists.
func (s *PlaylistService) ListByOwner(ctx context.Context, ownerID, callerID uint, p view.Params) (*view.Page, error) {
	if p.Filters == nil {
		p.Filters = map[string]string{}
	}
	p.Filters["owner"] = strconv.FormatUint(uint64(ownerID), 10)
	return s.views.Build(ctx, view.UserPlaylistsView, callerID, p)
}

func (s *PlaylistService) Update(ctx context.Context, in UpdatePlaylistInput) (*models.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, in.PlaylistID, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		if err := validation.ValidateTitle(in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		playlist.Name = strings.TrimSpace(in.Name)
	}
	if in.Description != "" {
		if err := validation.ValidateDescription(in.Description); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		playlist.Description = in.Description
	}

	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) Delete(ctx context.Context, userID, playlistID uint) error {
	if _, err := s.ownedPlaylist(ctx, playlistID, userID); err != nil {
		return err
	}
	return s.playlistRepo.Delete(ctx, playlistID)
}

// AddVideo puts a video into the playlist. Adding a video that is already a
// member is a no-op, so retries are safe.
func (s *PlaylistService) AddVideo(ctx context.Context, userID, playlistID, videoID uint) error {
	if _, err := s.ownedPlaylist(ctx, playlistID, userID); err != nil {
		return err
	}

	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if video == nil || (!video.IsPublished && video.OwnerID != userID) {
		return models.NewNotFoundError("Video", videoID)
	}

	return s.playlistRepo.AddVideo(ctx, playlistID, videoID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, userID, playlistID, videoID uint) error {
	if _, err := s.ownedPlaylist(ctx, playlistID, userID); err != nil {
		return err
	}
	return s.playlistRepo.RemoveVideo(ctx, playlistID, videoID)
}

func (s *PlaylistService) ownedPlaylist(ctx context.Context, playlistID, userID uint) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, models.NewNotFoundError("Playlist", playlistID)
	}
	if playlist.OwnerID != userID {
		return nil, models.NewForbiddenError("You can only modify your own playlists")
	}
	return playlist, nil
}
