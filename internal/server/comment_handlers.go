package server

import (
	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListComments handles GET /api/v1/videos/:id/comments
func (s *Server) ListComments(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page, err := s.commentService.ListByVideo(c.UserContext(), videoID, callerID(c), parseViewParams(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}

// AddComment handles POST /api/v1/videos/:id/comments
func (s *Server) AddComment(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
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

	comment, err := s.commentService.Add(c.UserContext(), mustUserID(c), videoID, req.Content)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
}

// UpdateComment handles PATCH /api/v1/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
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

	comment, err := s.commentService.Update(c.UserContext(), mustUserID(c), commentID, req.Content)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"comment": comment})
}

// DeleteComment handles DELETE /api/v1/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.Delete(c.UserContext(), mustUserID(c), commentID); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
