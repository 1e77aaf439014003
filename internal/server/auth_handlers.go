package server

import (
	"vidtube/internal/models"
	"vidtube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/v1/auth/register. The body is multipart so the
// avatar and cover images can ride along with the account fields.
func (s *Server) Register(c *fiber.Ctx) error {
	in := service.RegisterInput{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		FullName: c.FormValue("full_name"),
		Password: c.FormValue("password"),
	}
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, email, and password are required"))
	}

	avatar, err := formUpload(c, "avatar")
	if err != nil {
		return models.RespondError(c, err)
	}
	defer avatar.Close()
	in.Avatar = avatar

	cover, err := formUpload(c, "cover")
	if err != nil {
		return models.RespondError(c, err)
	}
	defer cover.Close()
	in.Cover = cover

	user, err := s.userService.Register(c.UserContext(), in)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": user,
	})
}

// Login handles POST /api/v1/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Identifier string `json:"identifier"`
		Username   string `json:"username"`
		Email      string `json:"email"`
		Password   string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	identifier := req.Identifier
	if identifier == "" {
		identifier = req.Username
	}
	if identifier == "" {
		identifier = req.Email
	}

	user, tokens, err := s.userService.Login(c.UserContext(), identifier, req.Password)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":   user,
		"tokens": tokens,
	})
}

// Logout handles POST /api/v1/auth/logout
func (s *Server) Logout(c *fiber.Ctx) error {
	jti, _ := c.Locals("jti").(string)
	if err := s.userService.Logout(c.UserContext(), mustUserID(c), jti); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// RefreshToken handles POST /api/v1/auth/refresh
func (s *Server) RefreshToken(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tokens, err := s.userService.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"tokens": tokens,
	})
}
