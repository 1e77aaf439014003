package server

import (
	"vidtube/internal/models"
	"vidtube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePlaylist handles POST /api/v1/playlists
func (s *Server) CreatePlaylist(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	playlist, err := s.playlistService.Create(c.UserContext(), service.CreatePlaylistInput{
		OwnerID:     mustUserID(c),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"playlist": playlist})
}

// GetPlaylist handles GET /api/v1/playlists/:id
func (s *Server) GetPlaylist(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	row, err := s.playlistService.Get(c.UserContext(), id, callerID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"playlist": row})
}

// GetUserPlaylists handles GET /api/v1/users/:userId/playlists
func (s *Server) GetUserPlaylists(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	page, err := s.playlistService.ListByOwner(c.UserContext(), userID, callerID(c), parseViewParams(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}

// UpdatePlaylist handles PATCH /api/v1/playlists/:id
func (s *Server) UpdatePlaylist(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	playlist, err := s.playlistService.Update(c.UserContext(), service.UpdatePlaylistInput{
		UserID:      mustUserID(c),
		PlaylistID:  id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"playlist": playlist})
}

// DeletePlaylist handles DELETE /api/v1/playlists/:id
func (s *Server) DeletePlaylist(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.playlistService.Delete(c.UserContext(), mustUserID(c), id); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Playlist deleted"})
}

// AddPlaylistVideo handles PATCH /api/v1/playlists/:id/videos/:videoId
func (s *Server) AddPlaylistVideo(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	if err := s.playlistService.AddVideo(c.UserContext(), mustUserID(c), playlistID, videoID); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Video added to playlist"})
}

// RemovePlaylistVideo handles DELETE /api/v1/playlists/:id/videos/:videoId
func (s *Server) RemovePlaylistVideo(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	if err := s.playlistService.RemoveVideo(c.UserContext(), mustUserID(c), playlistID, videoID); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Video removed from playlist"})
}
