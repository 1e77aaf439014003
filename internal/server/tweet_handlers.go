package server

import (
	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateTweet handles POST /api/v1/tweets
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tweet, err := s.tweetService.Create(c.UserContext(), mustUserID(c), req.Content)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"tweet": tweet})
}

// GetUserTweets handles GET /api/v1/users/:userId/tweets
func (s *Server) GetUserTweets(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	page, err := s.tweetService.ListByOwner(c.UserContext(), userID, callerID(c), parseViewParams(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}

// UpdateTweet handles PATCH /api/v1/tweets/:id
func (s *Server) UpdateTweet(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tweet, err := s.tweetService.Update(c.UserContext(), mustUserID(c), id, req.Content)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"tweet": tweet})
}

// DeleteTweet handles DELETE /api/v1/tweets/:id
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.tweetService.Delete(c.UserContext(), mustUserID(c), id); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Tweet deleted"})
}
