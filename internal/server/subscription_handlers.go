package server

import (
	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleSubscription handles POST /api/v1/subscriptions/channel/:channelId
func (s *Server) ToggleSubscription(c *fiber.Ctx) error {
	channelID, err := s.parseID(c, "channelId")
	if err != nil {
		return nil
	}

	subscribed, err := s.subService.Toggle(c.UserContext(), mustUserID(c), channelID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"subscribed": subscribed})
}

// GetChannelSubscribers handles GET /api/v1/subscriptions/channel/:channelId/subscribers
func (s *Server) GetChannelSubscribers(c *fiber.Ctx) error {
	channelID, err := s.parseID(c, "channelId")
	if err != nil {
		return nil
	}

	page, err := s.subService.Subscribers(c.UserContext(), channelID, callerID(c), parseViewParams(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}

// GetSubscribedChannels handles GET /api/v1/subscriptions/user/:userId
func (s *Server) GetSubscribedChannels(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	page, err := s.subService.Subscriptions(c.UserContext(), userID, callerID(c), parseViewParams(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}
