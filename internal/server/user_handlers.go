package server

import (
	"vidtube/internal/models"
	"vidtube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMe handles GET /api/v1/users/me
func (s *Server) GetMe(c *fiber.Ctx) error {
	user, err := s.userService.GetCurrent(c.UserContext(), mustUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// UpdateMe handles PATCH /api/v1/users/me
func (s *Server) UpdateMe(c *fiber.Ctx) error {
	var req struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:   mustUserID(c),
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// ChangePassword handles POST /api/v1/users/me/change-password
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.userService.ChangePassword(c.UserContext(), mustUserID(c), req.OldPassword, req.NewPassword); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password changed"})
}

// UpdateAvatar handles PATCH /api/v1/users/me/avatar
func (s *Server) UpdateAvatar(c *fiber.Ctx) error {
	up, err := formUpload(c, "avatar")
	if err != nil {
		return models.RespondError(c, err)
	}
	defer up.Close()

	user, err := s.userService.UpdateAvatar(c.UserContext(), mustUserID(c), up)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// UpdateCover handles PATCH /api/v1/users/me/cover
func (s *Server) UpdateCover(c *fiber.Ctx) error {
	up, err := formUpload(c, "cover")
	if err != nil {
		return models.RespondError(c, err)
	}
	defer up.Close()

	user, err := s.userService.UpdateCover(c.UserContext(), mustUserID(c), up)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// GetWatchHistory handles GET /api/v1/users/me/history
func (s *Server) GetWatchHistory(c *fiber.Ctx) error {
	page, err := s.userService.WatchHistory(c.UserContext(), mustUserID(c), parseViewParams(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}

// GetChannelProfile handles GET /api/v1/channels/:username
func (s *Server) GetChannelProfile(c *fiber.Ctx) error {
	row, err := s.userService.ChannelProfile(c.UserContext(), c.Params("username"), callerID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"channel": row})
}
