package server

import (
	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleVideoLike handles POST /api/v1/likes/toggle/video/:id
func (s *Server) ToggleVideoLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, err := s.likeService.ToggleVideoLike(c.UserContext(), mustUserID(c), id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// ToggleCommentLike handles POST /api/v1/likes/toggle/comment/:id
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, err := s.likeService.ToggleCommentLike(c.UserContext(), mustUserID(c), id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// ToggleTweetLike handles POST /api/v1/likes/toggle/tweet/:id
func (s *Server) ToggleTweetLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, err := s.likeService.ToggleTweetLike(c.UserContext(), mustUserID(c), id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// GetLikedVideos handles GET /api/v1/likes/videos
func (s *Server) GetLikedVideos(c *fiber.Ctx) error {
	page, err := s.likeService.LikedVideos(c.UserContext(), mustUserID(c), parseViewParams(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}
