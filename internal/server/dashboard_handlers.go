package server

import (
	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetChannelStats handles GET /api/v1/dashboard/stats
func (s *Server) GetChannelStats(c *fiber.Ctx) error {
	stats, err := s.dashboardService.Stats(c.UserContext(), mustUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"stats": stats})
}

// GetChannelVideos handles GET /api/v1/dashboard/videos. Unlike the public
// catalog this includes the caller's unpublished videos.
func (s *Server) GetChannelVideos(c *fiber.Ctx) error {
	page, err := s.dashboardService.Videos(c.UserContext(), mustUserID(c), parseViewParams(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}
